package handlers

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"sync"
	"testing"

	"deckforge/internal/imaging"
	"deckforge/internal/pptx"
)

const pictureBody = `{
	"titleSlide": {"presentationName": "Team", "presentationSubtitle": "2024"},
	"slides": [{"title": "People", "image": {"url": "https://img.example/team.png", "caption": "Photo by Ann on Unsplash"}}]
}`

// flakyPictures fails the first failFor fetches with err, then serves a
// small PNG.
type flakyPictures struct {
	mu      sync.Mutex
	failFor int
	err     error
	pic     imaging.Picture
	fetches int
}

func (f *flakyPictures) Fetch(context.Context, string) (imaging.Picture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetches <= f.failFor {
		return imaging.Picture{}, f.err
	}
	return f.pic, nil
}

func (f *flakyPictures) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func smallPNG(t *testing.T) imaging.Picture {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return imaging.Picture{Data: buf.Bytes(), ContentType: "image/png", Width: 4, Height: 3}
}

func TestDownload_RetriesPicturesUntilArchived(t *testing.T) {
	pictures := &flakyPictures{failFor: 1, err: errors.New("status 503"), pic: smallPNG(t)}
	env := newTestEnvWithEncoder(t, pptx.NewEncoder(pictures))

	_, body := post(t, env, "/slideshow/classic", pictureBody)
	path := "/slideshow/" + createdID(t, body, "classic").String() + "/classic"

	// The first render draws a placeholder and must not be kept.
	resp, first := get(t, env, path)
	if resp.StatusCode != http.StatusOK || len(first) == 0 {
		t.Fatalf("first download: status %d, %d bytes", resp.StatusCode, len(first))
	}
	if len(env.archive.decks) != 0 {
		t.Fatal("deck with a placeholder picture was archived")
	}

	// The source has recovered, so the second download fetches again.
	if resp, _ := get(t, env, path); resp.StatusCode != http.StatusOK {
		t.Fatalf("second download: status %d", resp.StatusCode)
	}
	if got := pictures.count(); got != 2 {
		t.Fatalf("picture fetches after two downloads: got %d, want 2", got)
	}
	if len(env.archive.decks) != 1 {
		t.Fatalf("complete deck not archived: %d decks", len(env.archive.decks))
	}

	// From now on the archive answers.
	get(t, env, path)
	if got := pictures.count(); got != 2 {
		t.Errorf("picture fetches after archived download: got %d, want 2", got)
	}
}

func TestDownload_ArchivesDeckWithUnfetchablePicture(t *testing.T) {
	pictures := &flakyPictures{failFor: 100, err: imaging.ErrNotFetchable}
	env := newTestEnvWithEncoder(t, pptx.NewEncoder(pictures))

	_, body := post(t, env, "/slideshow/calm", pictureBody)
	path := "/slideshow/" + createdID(t, body, "calm").String() + "/calm"

	get(t, env, path)
	get(t, env, path)

	if len(env.archive.decks) != 1 {
		t.Errorf("archived decks: got %d, want 1", len(env.archive.decks))
	}
	if got := pictures.count(); got != 1 {
		t.Errorf("picture fetches: got %d, want 1", got)
	}
}
