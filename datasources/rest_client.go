/*
SPDX-License-Identifier: Apache-2.0

Copyright 2026 The ttable Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package datasources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrRestStatus is returned when the REST API answers with a non-2xx status.
var ErrRestStatus = errors.New("unexpected REST status")

// SearchParams filters an enemy template search.
type SearchParams struct {
	String         string
	RankFilter     []int
	CultRankFilter []int
}

// values encodes the parameters the way the search endpoint expects
// repeated keys.
func (p SearchParams) values() url.Values {
	v := url.Values{}
	v.Set("string", p.String)
	for _, r := range p.RankFilter {
		v.Add("rank_filter[]", strconv.Itoa(r))
	}
	for _, r := range p.CultRankFilter {
		v.Add("cult_rank_filter[]", strconv.Itoa(r))
	}
	return v
}

// SearchResult is one enemy template returned by the search endpoint.
type SearchResult struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Race    string   `json:"race"`
	Rank    int      `json:"rank"`
	Owner   string   `json:"owner"`
	Tags    []string `json:"tags"`
	Starred bool     `json:"starred"`
}

// FeatureListItem is one item of a feature list.
type FeatureListItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SubmitResult is the reply to a POST action.
type SubmitResult struct {
	Success       bool   `json:"success"`
	OriginalValue string `json:"original_value,omitempty"`
	Error         string `json:"error,omitempty"`
	Message       string `json:"message,omitempty"`
}

// RestClient talks to the /rest API of the enemy generator.
type RestClient struct {
	Base    string
	Client  *http.Client
	Timeout time.Duration
}

// NewRestClient returns a client for the API rooted at base.
func NewRestClient(base string, timeout time.Duration) *RestClient {
	return &RestClient{
		Base:    strings.TrimRight(base, "/"),
		Client:  http.DefaultClient,
		Timeout: timeout,
	}
}

// Search runs a template search.
func (c *RestClient) Search(ctx context.Context, params SearchParams) ([]SearchResult, error) {
	var out struct {
		Results []SearchResult `json:"results"`
	}
	if err := c.do(ctx, http.MethodGet, "/rest/search/?"+params.values().Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// FeatureListItems returns the items of a feature list.
func (c *RestClient) FeatureListItems(ctx context.Context, listID int) ([]FeatureListItem, error) {
	var out struct {
		Data []FeatureListItem `json:"data"`
	}
	path := fmt.Sprintf("/rest/get_feature_list_items/%d/", listID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Submit POSTs body as JSON to /rest/<action>/<id>/. An unsuccessful
// reply is logged and returned without error; transport and decoding
// failures are returned as errors.
func (c *RestClient) Submit(ctx context.Context, action string, id int, body any) (SubmitResult, error) {
	var res SubmitResult
	path := fmt.Sprintf("/rest/%s/%d/", url.PathEscape(action), id)
	if err := c.do(ctx, http.MethodPost, path, body, &res); err != nil {
		log.Error().Err(err).Str("action", action).Int("id", id).Msg("REST submit failed")
		return res, err
	}
	if !res.Success {
		log.Warn().Str("action", action).Int("id", id).
			Str("error", res.Error).Str("message", res.Message).Msg("REST submit rejected")
	}
	return res, nil
}

func (c *RestClient) do(ctx context.Context, method, path string, body, out any) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s from %s %s", ErrRestStatus, resp.Status, method, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
