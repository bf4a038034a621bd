package pptx

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	ppt "github.com/VantageDataChat/GoPPT"

	"deckforge/internal/imaging"
	"deckforge/internal/models"
	"deckforge/internal/render"
	"deckforge/internal/theme"
)

// stubImages serves one picture for every URL, or fails when err is set.
type stubImages struct {
	pic   imaging.Picture
	err   error
	calls []string
}

func (s *stubImages) Fetch(_ context.Context, url string) (imaging.Picture, error) {
	s.calls = append(s.calls, url)
	return s.pic, s.err
}

func tinyPNG(t *testing.T) imaging.Picture {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return imaging.Picture{Data: buf.Bytes(), ContentType: "image/png", Width: 4, Height: 3}
}

func testDocument() render.Document {
	th := theme.Resolve("classic")
	return render.Document{
		Title: "Q1 Review",
		Theme: th,
		Pages: []render.Page{
			render.Record(models.Slide{Title: "Q1 Review", Subtitle: "2024"}, th, true),
			render.Record(models.Slide{Title: "Revenue", Bullets: []string{"Up 10%", "Stable margins"}}, th, true),
			render.Record(models.Slide{
				Title: "Team",
				Image: &models.Image{URL: "https://img.example/team.png", Caption: "Photo by Ann on Unsplash"},
			}, th, false),
		},
	}
}

// encode runs the encoder and returns its output.
func encode(t *testing.T, enc *Encoder, doc render.Document) *Output {
	t.Helper()
	out, err := enc.Encode(context.Background(), doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	o, ok := out.(*Output)
	if !ok {
		t.Fatalf("Encode returned %T, want *Output", out)
	}
	return o
}

// encodeToBytes runs the encoder and serializes its output.
func encodeToBytes(t *testing.T, enc *Encoder, doc render.Document) []byte {
	t.Helper()
	var buf bytes.Buffer
	if _, err := encode(t, enc, doc).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	return buf.Bytes()
}

func TestEncode_WritesOneSlidePerPage(t *testing.T) {
	images := &stubImages{pic: tinyPNG(t)}
	data := encodeToBytes(t, NewEncoder(images), testDocument())

	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatalf("output is not a zip container: % x", data[:4])
	}

	path := filepath.Join(t.TempDir(), "deck.pptx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
	reader, err := ppt.NewReader(ppt.ReaderPowerPoint2007)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	pres, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := pres.GetSlideCount(); got != 3 {
		t.Errorf("slide count: got %d, want 3", got)
	}

	if len(images.calls) != 1 || images.calls[0] != "https://img.example/team.png" {
		t.Errorf("picture fetches: got %q", images.calls)
	}
}

func TestEncode_MissingPictureStillEncodes(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		placeholders int
	}{
		{name: "not a url", err: imaging.ErrNotFetchable, placeholders: 0},
		{name: "server error", err: errors.New("imaging: status 503"), placeholders: 1},
		{name: "timeout", err: context.DeadlineExceeded, placeholders: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := encode(t, NewEncoder(&stubImages{err: tt.err}), testDocument())
			if len(out.data) == 0 {
				t.Fatal("expected a document even when a picture is unavailable")
			}
			if out.Placeholders != tt.placeholders {
				t.Errorf("placeholders: got %d, want %d", out.Placeholders, tt.placeholders)
			}
			if out.Degraded() != (tt.placeholders > 0) {
				t.Errorf("Degraded() = %v", out.Degraded())
			}
		})
	}
}

// slowImages blocks every fetch until the context ends.
type slowImages struct{}

func (slowImages) Fetch(ctx context.Context, _ string) (imaging.Picture, error) {
	<-ctx.Done()
	return imaging.Picture{}, ctx.Err()
}

func TestEncode_PictureBudget(t *testing.T) {
	enc := NewEncoder(slowImages{})
	enc.budget = 20 * time.Millisecond

	started := time.Now()
	out := encode(t, enc, testDocument())
	if elapsed := time.Since(started); elapsed > 5*time.Second {
		t.Errorf("encode took %v with a 20ms picture budget", elapsed)
	}
	if out.Placeholders != 1 {
		t.Errorf("placeholders: got %d, want 1", out.Placeholders)
	}
}

func TestEncode_NilImageSource(t *testing.T) {
	data := encodeToBytes(t, NewEncoder(nil), testDocument())
	if len(data) == 0 {
		t.Fatal("expected a document without an image source")
	}
}

func TestEncode_Errors(t *testing.T) {
	enc := NewEncoder(nil)

	if _, err := enc.Encode(context.Background(), render.Document{}); err == nil {
		t.Error("expected error for a document without pages")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := enc.Encode(ctx, testDocument()); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: got %v, want context.Canceled", err)
	}
}

func TestUnits(t *testing.T) {
	if got := emu(1); got != 914400 {
		t.Errorf("emu(1) = %d", got)
	}
	if got := emu(render.SlideHeight); got != 5143500 {
		t.Errorf("emu(slide height) = %d, want 5143500", got)
	}
	if got := argb("4E342E"); got != "FF4E342E" {
		t.Errorf("argb = %q", got)
	}
}
