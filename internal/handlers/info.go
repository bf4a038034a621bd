// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"deckforge/internal/theme"
)

// Home answers the root path with a plain greeting.
func Home(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Hello, world!"))
}

// Health reports that the process is serving requests.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type themeInfo struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Themes lists the available themes and the default used for unknown names.
func Themes(w http.ResponseWriter, _ *http.Request) {
	all := theme.All()
	list := make([]themeInfo, 0, len(all))
	for _, th := range all {
		list = append(list, themeInfo{Key: th.Key, Name: th.Name})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"default": theme.Default,
		"themes":  list,
	})
}
