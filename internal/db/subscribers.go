package db

import (
	"log"

	"radiorsser/internal/models"
)

// GetNotifiableSubscribers returns subscribers who opted in to roster change
// notifications.
func GetNotifiableSubscribers() ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	err := DB.Select(&subscribers, "SELECT * FROM subscribers WHERE notify = TRUE ORDER BY id")
	return subscribers, err
}

// AddSubscriber registers an email for notifications, re-enabling the opt-in
// flag if the address already exists.
func AddSubscriber(email string) (*models.Subscriber, error) {
	query := `
		INSERT INTO subscribers (email, notify)
		VALUES ($1, TRUE)
		ON CONFLICT (email) DO UPDATE SET notify = TRUE
		RETURNING *
	`
	subscriber := &models.Subscriber{}
	err := DB.Get(subscriber, query, email)
	if err != nil {
		log.Printf("Error adding subscriber %s: %v", email, err)
		return nil, err
	}
	return subscriber, nil
}
