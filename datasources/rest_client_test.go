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
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mythras-eg/ttable/core/config"
)

func newRestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/search/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("string") != "orc" {
			json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
			return
		}
		if got := q["rank_filter[]"]; len(got) != 0 && !cmp.Equal(got, []string{"2", "3"}) {
			http.Error(w, "bad rank filter", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{
			{"id": 7, "name": "Orc Warrior", "race": "Orc", "rank": 2, "owner": "gm", "tags": []string{"orc", "melee"}, "starred": true},
			{"id": 9, "name": "Orc Shaman", "race": "Orc", "rank": 5, "owner": "gm", "tags": []string{}},
		}})
	})
	mux.HandleFunc("/rest/get_feature_list_items/3/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{{"id": 1, "name": "Scar"}, {"id": 2, "name": "Limp"}}})
	})
	mux.HandleFunc("/rest/toggle_star/7/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	mux.HandleFunc("/rest/set_name/7/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]any{
			"success":        false,
			"original_value": "Orc Warrior",
			"error":          "name taken: " + body["value"],
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRestClientSearch(t *testing.T) {
	srv := newRestServer(t)
	client := NewRestClient(srv.URL+"/", 0)

	results, err := client.Search(context.Background(), SearchParams{String: "orc", RankFilter: []int{2, 3}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []SearchResult{
		{ID: 7, Name: "Orc Warrior", Race: "Orc", Rank: 2, Owner: "gm", Tags: []string{"orc", "melee"}, Starred: true},
		{ID: 9, Name: "Orc Shaman", Race: "Orc", Rank: 5, Owner: "gm", Tags: []string{}},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("Search mismatch (-want +got):\n%s", diff)
	}

	none, err := client.Search(context.Background(), SearchParams{String: "elf"})
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("expected no results, got %d", len(none))
	}
}

func TestRestClientFeatureListItems(t *testing.T) {
	srv := newRestServer(t)
	client := NewRestClient(srv.URL, 0)

	items, err := client.FeatureListItems(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]FeatureListItem{{1, "Scar"}, {2, "Limp"}}, items); diff != "" {
		t.Errorf("FeatureListItems mismatch (-want +got):\n%s", diff)
	}

	if _, err := client.FeatureListItems(context.Background(), 4); !errors.Is(err, ErrRestStatus) {
		t.Errorf("missing list error = %v, want ErrRestStatus", err)
	}
}

func TestRestClientSubmit(t *testing.T) {
	srv := newRestServer(t)
	client := NewRestClient(srv.URL, 0)

	res, err := client.Submit(context.Background(), "toggle_star", 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Error("toggle_star should succeed")
	}

	res, err = client.Submit(context.Background(), "set_name", 7, map[string]string{"value": "Grunt"})
	if err != nil {
		t.Fatal(err)
	}
	want := SubmitResult{Success: false, OriginalValue: "Orc Warrior", Error: "name taken: Grunt"}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Submit mismatch (-want +got):\n%s", diff)
	}
}

func TestRankLabel(t *testing.T) {
	tests := []struct {
		rank int
		want string
	}{
		{1, "1 Rabble"},
		{2, "2 Novice"},
		{3, "3 Skilled"},
		{4, "4 Veteran"},
		{5, "5 Master"},
		{0, "0"},
		{6, "6"},
	}
	for _, tt := range tests {
		if got := RankLabel(tt.rank); got != tt.want {
			t.Errorf("RankLabel(%d) = %q, want %q", tt.rank, got, tt.want)
		}
	}
}

func TestSearchLoader(t *testing.T) {
	srv := newRestServer(t)
	manager := NewManager()
	manager.RegisterLoader(NewSearchLoader(NewRestClient(srv.URL, 0)))
	if err := manager.AddPreset(config.TablePreset{ID: "orcs", Title: "Orcs", Source: SourceSearch, Query: "orc"}); err != nil {
		t.Fatal(err)
	}

	table, err := manager.LoadData(context.Background(), "orcs")
	if err != nil {
		t.Fatal(err)
	}
	if table.Caption != "2 templates found." {
		t.Errorf("caption = %q", table.Caption)
	}
	want := [][]string{
		{"*", "Orc Warrior", "Orc", "2 Novice", "gm", "orc, melee"},
		{"", "Orc Shaman", "Orc", "5 Master", "gm", ""},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if idx := table.ColumnIndex("Rank"); table.Headers[idx].SortType.String() != "digit" {
		t.Errorf("Rank sort type = %v, want digit", table.Headers[idx].SortType)
	}
}
