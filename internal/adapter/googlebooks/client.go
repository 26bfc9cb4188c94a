package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yogeshkhant77/Booksy/internal/app/config"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
)

// ErrVolumeNotFound reports a 404 for a volume lookup by ID.
var ErrVolumeNotFound = errors.New("google books volume not found")

const maxResultsCap = 40

// Volume is the flattened shape served to clients. The upstream volumeInfo
// nesting is collapsed and absent fields get stable defaults.
type Volume struct {
	GoogleID      string            `json:"googleId"`
	Title         string            `json:"title"`
	Authors       []string          `json:"authors"`
	Author        string            `json:"author"`
	Description   string            `json:"description"`
	Publisher     string            `json:"publisher"`
	PublishedDate string            `json:"publishedDate"`
	PageCount     int               `json:"pageCount"`
	Categories    []string          `json:"categories"`
	Genre         string            `json:"genre"`
	Language      string            `json:"language"`
	ISBN          string            `json:"isbn"`
	ImageLinks    map[string]string `json:"imageLinks"`
	Thumbnail     string            `json:"thumbnail"`
	PreviewLink   string            `json:"previewLink"`
	InfoLink      string            `json:"infoLink"`
	AverageRating float64           `json:"averageRating"`
	RatingsCount  int               `json:"ratingsCount"`
}

type SearchResult struct {
	TotalItems int      `json:"totalItems"`
	Books      []Volume `json:"books"`
}

type apiVolume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title               string   `json:"title"`
		Authors             []string `json:"authors"`
		Description         string   `json:"description"`
		Publisher           string   `json:"publisher"`
		PublishedDate       string   `json:"publishedDate"`
		PageCount           int      `json:"pageCount"`
		Categories          []string `json:"categories"`
		Language            string   `json:"language"`
		IndustryIdentifiers []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"industryIdentifiers"`
		ImageLinks    map[string]string `json:"imageLinks"`
		PreviewLink   string            `json:"previewLink"`
		InfoLink      string            `json:"infoLink"`
		AverageRating float64           `json:"averageRating"`
		RatingsCount  int               `json:"ratingsCount"`
	} `json:"volumeInfo"`
}

type apiSearchResponse struct {
	TotalItems int         `json:"totalItems"`
	Items      []apiVolume `json:"items"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

func NewClient(cfg config.GoogleBooksConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.With("adapter", "googlebooks"),
	}
}

// Search runs a full-text query. maxResults above the upstream cap of 40
// is clamped, not rejected.
func (c *Client) Search(ctx context.Context, query string, startIndex, maxResults int) (*SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 20
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}
	if startIndex < 0 {
		startIndex = 0
	}

	params := url.Values{}
	params.Set("q", strings.TrimSpace(query))
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("maxResults", strconv.Itoa(maxResults))

	var apiResp apiSearchResponse
	if err := c.getJSON(ctx, c.baseURL+"?"+params.Encode(), &apiResp); err != nil {
		return nil, err
	}

	result := &SearchResult{
		TotalItems: apiResp.TotalItems,
		Books:      make([]Volume, 0, len(apiResp.Items)),
	}
	for _, item := range apiResp.Items {
		result.Books = append(result.Books, mapVolume(item))
	}
	return result, nil
}

// Browse fetches a page of popular volumes, optionally narrowed to a
// subject, ordered by relevance.
func (c *Client) Browse(ctx context.Context, subject string, startIndex, maxResults int) (*SearchResult, error) {
	query := "books"
	if subject != "" {
		query = "subject:" + subject
	}

	if maxResults <= 0 {
		maxResults = maxResultsCap
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}
	if startIndex < 0 {
		startIndex = 0
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("orderBy", "relevance")

	var apiResp apiSearchResponse
	if err := c.getJSON(ctx, c.baseURL+"?"+params.Encode(), &apiResp); err != nil {
		return nil, err
	}

	result := &SearchResult{
		TotalItems: apiResp.TotalItems,
		Books:      make([]Volume, 0, len(apiResp.Items)),
	}
	for _, item := range apiResp.Items {
		result.Books = append(result.Books, mapVolume(item))
	}
	return result, nil
}

// GetVolume fetches a single volume by its Google Books ID.
func (c *Client) GetVolume(ctx context.Context, id string) (*Volume, error) {
	var item apiVolume
	if err := c.getJSON(ctx, c.baseURL+"/"+url.PathEscape(id), &item); err != nil {
		return nil, err
	}
	vol := mapVolume(item)
	return &vol, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build google books request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("google books request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrVolumeNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Errorf("google books API returned %d: %s", resp.StatusCode, string(body))
		return fmt.Errorf("google books API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode google books response: %w", err)
	}
	return nil
}

func mapVolume(item apiVolume) Volume {
	info := item.VolumeInfo

	vol := Volume{
		GoogleID:      item.ID,
		Title:         info.Title,
		Authors:       info.Authors,
		Description:   info.Description,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		PageCount:     info.PageCount,
		Categories:    info.Categories,
		Language:      info.Language,
		ImageLinks:    info.ImageLinks,
		PreviewLink:   info.PreviewLink,
		InfoLink:      info.InfoLink,
		AverageRating: info.AverageRating,
		RatingsCount:  info.RatingsCount,
	}

	if vol.Title == "" {
		vol.Title = "No title"
	}
	if len(vol.Authors) == 0 {
		vol.Authors = []string{"Unknown"}
	}
	vol.Author = strings.Join(vol.Authors, ", ")
	if vol.Description == "" {
		vol.Description = "No description available"
	}
	if vol.Publisher == "" {
		vol.Publisher = "Unknown"
	}
	if vol.PublishedDate == "" {
		vol.PublishedDate = "Unknown"
	}
	if vol.Categories == nil {
		vol.Categories = []string{}
	}
	vol.Genre = "General"
	if len(vol.Categories) > 0 {
		vol.Genre = vol.Categories[0]
	}
	if vol.Language == "" {
		vol.Language = "en"
	}
	if vol.ImageLinks == nil {
		vol.ImageLinks = map[string]string{}
	}

	// ISBN-13 wins over ISBN-10 when both are present.
	for _, id := range info.IndustryIdentifiers {
		if id.Type == "ISBN_13" {
			vol.ISBN = id.Identifier
			break
		}
		if id.Type == "ISBN_10" && vol.ISBN == "" {
			vol.ISBN = id.Identifier
		}
	}

	vol.Thumbnail = vol.ImageLinks["thumbnail"]
	if vol.Thumbnail == "" {
		vol.Thumbnail = vol.ImageLinks["smallThumbnail"]
	}

	return vol
}
