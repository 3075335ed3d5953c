package words

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Remote fetches a word from a JSON endpoint on every call.
//
// Accepted bodies:
//
//	["apple"]
//	[{"word":"apple","definition":"..."}]
//	{"word":"apple","definition":"..."}
type Remote struct {
	URL    string
	Client *http.Client
}

func NewRemote(url string) *Remote {
	return &Remote{URL: url, Client: &http.Client{Timeout: 10 * time.Second}}
}

// FetchWord performs one GET. Transport failures are returned as-is; an
// empty or unusable body yields ErrNoWordAvailable.
func (r *Remote) FetchWord(ctx context.Context) (Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return Entry{}, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := r.Client.Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("words: fetch %s: %w", r.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Entry{}, fmt.Errorf("words: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Entry{}, fmt.Errorf("words: remote status %d", resp.StatusCode)
	}

	entries, err := decodeRemote(body)
	if err != nil {
		return Entry{}, fmt.Errorf("words: decode: %w", err)
	}
	entries = Normalize(entries)
	if len(entries) == 0 {
		return Entry{}, ErrNoWordAvailable
	}
	return entries[0], nil
}

func decodeRemote(body []byte) ([]Entry, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	if body[0] == '{' {
		var e Entry
		if err := json.Unmarshal(body, &e); err != nil {
			return nil, err
		}
		return []Entry{e}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var w string
		if err := json.Unmarshal(item, &w); err == nil {
			out = append(out, Entry{Word: w})
			continue
		}
		var e Entry
		if err := json.Unmarshal(item, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
