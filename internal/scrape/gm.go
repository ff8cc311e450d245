package scrape

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"radiorsser/internal/fetch"
	"radiorsser/internal/models"
	"radiorsser/internal/textutil"
)

const (
	// noEpisodesMarker appears as the only list item when a month has no
	// broadcasts.
	noEpisodesMarker = "Выпусков в этом месяце не было"

	// desiredEpisodes is how many episodes a feed should carry before the
	// walker stops looking at older months.
	desiredEpisodes = 10
)

// GovoritMoskva extracts programs and episodes from the govoritmoskva.ru
// markup. Tightly coupled to that site's structure: when the markup changes,
// extraction fails loudly rather than producing corrupted feeds.
type GovoritMoskva struct {
	fetcher *fetch.Fetcher
	records RecordInfo
	rootURL string
	now     func() time.Time
}

func NewGovoritMoskva(fetcher *fetch.Fetcher, records RecordInfo, rootURL string) *GovoritMoskva {
	return &GovoritMoskva{
		fetcher: fetcher,
		records: records,
		rootURL: rootURL,
		now:     time.Now,
	}
}

// ExtractPrograms walks the station's program directory and follows each
// entry to its own page for the full name and description.
func (s *GovoritMoskva) ExtractPrograms(ctx context.Context, station models.Station) ([]models.Program, error) {
	doc, err := s.fetcher.Document(ctx, station.ProgramsRoot)
	if err != nil {
		return nil, err
	}

	items := doc.Find("div#programs ul.programsList li")
	if items.Length() == 0 {
		return nil, fmt.Errorf("no program entries found at %s", station.ProgramsRoot)
	}

	var programs []models.Program
	var extractErr error
	items.EachWithBreak(func(_ int, li *goquery.Selection) bool {
		href, ok := li.Find("a").First().Attr("href")
		if !ok {
			extractErr = fmt.Errorf("program entry without a link at %s", station.ProgramsRoot)
			return false
		}

		programURL := station.ProgramsRoot + strings.TrimPrefix(href, "/broadcasts/")
		program, err := s.extractProgram(ctx, station, programURL)
		if err != nil {
			extractErr = err
			return false
		}

		programs = append(programs, *program)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	return programs, nil
}

func (s *GovoritMoskva) extractProgram(ctx context.Context, station models.Station, programURL string) (*models.Program, error) {
	doc, err := s.fetcher.Document(ctx, programURL)
	if err != nil {
		return nil, err
	}

	name := textutil.CleanTitle(strings.TrimSpace(doc.Find("div.pageHeader h1").First().Text()))
	if name == "" {
		return nil, fmt.Errorf("no program name found at %s", programURL)
	}

	description := strings.TrimSpace(doc.Find("div.aboutProgram div.textDescribe p").Last().Text())
	if description == "" {
		description = name
	}
	description = textutil.CleanDescription(description)

	slug := textutil.Slugify(name)

	return &models.Program{
		StationID:   station.ID,
		Title:       name,
		Slug:        slug,
		Description: description,
		URL:         programURL,
		FeedURL:     fmt.Sprintf("%s/feeds/%s/%s.xml", s.rootURL, station.ShortName, slug),
	}, nil
}

// ExtractEpisodes collects the program's recent episode fragments and parses
// each one. Fragments without a published audio file are skipped, not
// errors.
func (s *GovoritMoskva) ExtractEpisodes(ctx context.Context, program models.Program) ([]models.Episode, error) {
	items, err := s.collectRawEpisodes(ctx, program, desiredEpisodes)
	if err != nil {
		return nil, err
	}

	var episodes []models.Episode
	for _, item := range items {
		episode, err := s.parseEpisode(ctx, program, item)
		if err != nil {
			return nil, err
		}
		if episode == nil {
			continue
		}
		episodes = append(episodes, *episode)
	}

	return episodes, nil
}

// collectRawEpisodes walks at most two month windows: the current month and,
// only when the current month came up short of desired, the previous one.
// There is never a third window no matter how few episodes were found.
func (s *GovoritMoskva) collectRawEpisodes(ctx context.Context, program models.Program, desired int) ([]*goquery.Selection, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	windows := []time.Time{monthStart, monthStart.AddDate(0, -1, 0)}

	var items []*goquery.Selection
	for i, window := range windows {
		if i > 0 && len(items) >= desired {
			break
		}

		pageURL := fmt.Sprintf("%s?month=%d&year=%d", program.URL, int(window.Month()), window.Year())
		doc, err := s.fetcher.Document(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		monthItems := doc.Find("div.oneProgramPage ul").First().ChildrenFiltered("li")
		if monthItems.Length() == 0 {
			return nil, fmt.Errorf("episode list not found at %s", pageURL)
		}
		if strings.Contains(monthItems.First().Text(), noEpisodesMarker) {
			continue
		}

		monthItems.Each(func(_ int, li *goquery.Selection) {
			items = append(items, li)
		})
	}

	return items, nil
}

// parseEpisode extracts one episode from its list-item fragment. A nil
// episode with a nil error means the fragment carries no usable audio record
// and the caller should move on.
func (s *GovoritMoskva) parseEpisode(ctx context.Context, program models.Program, item *goquery.Selection) (*models.Episode, error) {
	rawDate := strings.TrimSpace(item.Find("div.time span").First().Text())
	date, err := textutil.ParseRussianDate(rawDate, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to parse episode date for %q: %w", program.Title, err)
	}

	var guests []models.Guest
	item.Find("a.person").Each(func(_ int, g *goquery.Selection) {
		img, _ := g.Find("img").First().Attr("src")
		guests = append(guests, models.Guest{
			Image: img,
			Name:  strings.TrimSpace(g.Find("p.name").First().Text()),
			Title: strings.TrimSpace(g.Find("p.grey").First().Text()),
		})
	})

	title := strings.TrimSpace(item.Find("p.header").First().Text())
	switch {
	case title != "":
		title = textutil.CleanTitle(title)
	case len(guests) == 1:
		title = guests[0].Name
	default:
		title = program.Title
	}

	download := item.Find("a.download").First()
	fileName, hasName := download.Attr("download")
	fileURL, hasURL := download.Attr("href")
	if !hasName || !hasURL {
		return nil, nil
	}

	duration, size, err := s.records.FileInfo(ctx, fileURL, fileName)
	if err != nil {
		var fetchErr *fetch.FetchError
		if errors.As(err, &fetchErr) {
			return nil, nil
		}
		return nil, err
	}

	return &models.Episode{
		Date:        date,
		Title:       fmt.Sprintf("%s (%s)", title, date.Format("2006-01-02")),
		Description: GuestDescription(guests),
		Guests:      guests,
		Record: models.Record{
			Name:     fileName,
			URL:      fileURL,
			Duration: duration,
			Size:     size,
		},
	}, nil
}

// GuestDescription renders the guest list as the HTML fragment used for feed
// entry descriptions.
func GuestDescription(guests []models.Guest) string {
	parts := make([]string, 0, len(guests))
	for _, g := range guests {
		parts = append(parts, fmt.Sprintf("<b>%s</b><br>%s<br>", g.Name, g.Title))
	}
	return strings.Join(parts, "<br>")
}
