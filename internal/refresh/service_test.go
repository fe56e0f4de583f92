package refresh

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/samvad-hq/skywatch-dashboard/internal/display"
	"github.com/samvad-hq/skywatch-dashboard/internal/present"
	"github.com/samvad-hq/skywatch-dashboard/pkg/sources"
)

// fakeFetcher returns a preset result and counts calls.
type fakeFetcher struct {
	typ    string
	result sources.Result
	calls  int
	onCall func()
}

func (f *fakeFetcher) Type() string { return f.typ }
func (f *fakeFetcher) Fetch(_ context.Context, src sources.Source) sources.Result {
	f.calls++
	if f.onCall != nil {
		f.onCall()
	}
	res := f.result
	res.SourceID = src.ID
	return res
}

// recordingLogger counts warnings.
type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) InfoObj(string, string, interface{})  {}
func (l *recordingLogger) DebugObj(string, string, interface{}) {}
func (l *recordingLogger) ErrorObj(string, string, interface{}) {}
func (l *recordingLogger) WarnObj(msg, _ string, _ interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

type fixture struct {
	live, apod, media *fakeFetcher
}

func newFixture() *fixture {
	return &fixture{
		live: &fakeFetcher{typ: sources.TypeLiveFeed, result: sources.Ok("", []sources.Record{{
			"target": "NGC 1300", "image": "https://img.example/live.jpg", "timestamp": json.Number("1700000000"),
		}})},
		apod: &fakeFetcher{typ: sources.TypeAPOD, result: sources.Ok("", []sources.Record{
			{"title": "Pillars", "url": "https://a.example/p.jpg", "explanation": "Gas.", "date": "2024-01-02"},
		})},
		media: &fakeFetcher{typ: sources.TypeMediaSearch, result: sources.Ok("", []sources.Record{
			{"title": "Webb", "description": "Deep field", "href": "https://w.example/1.jpg"},
		})},
	}
}

func (f *fixture) service(t *testing.T, srcs []sources.Source, log *recordingLogger) *Service {
	t.Helper()
	reg, err := sources.NewRegistry(srcs)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	fetchers := sources.NewFetcherRegistry(f.live, f.apod, f.media)
	if log == nil {
		return NewService(reg, fetchers, nil)
	}
	return NewService(reg, fetchers, log)
}

func subheaders(p *display.Page) []string {
	var out []string
	for _, b := range p.Blocks {
		if b.Kind == display.KindSubheader {
			out = append(out, b.Text)
		}
	}
	return out
}

func TestRenderDrawsSectionsInOrder(t *testing.T) {
	f := newFixture()
	svc := f.service(t, sources.DefaultSources(), nil)
	page := display.NewPage("c1")

	summary, err := svc.Render(context.Background(), page)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := []string{
		"📡 Hubble Live Feed",
		"🛰️ Latest NASA Space Images",
		"🔭 Latest Images from James Webb Space Telescope",
		ComparisonHeader,
	}
	got := subheaders(page)
	if len(got) != len(want) {
		t.Fatalf("expected subheaders %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("subheader %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if page.PageTitle != PageTitle || page.Icon != PageIcon {
		t.Fatalf("unexpected page title %q %q", page.PageTitle, page.Icon)
	}
	if len(summary.Sections) != 3 || summary.Unavailable() != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if f.live.calls != 1 || f.apod.calls != 1 || f.media.calls != 1 {
		t.Fatalf("expected one fetch per source, got %d/%d/%d", f.live.calls, f.apod.calls, f.media.calls)
	}
}

func TestRenderSkipsDisabledMediaStage(t *testing.T) {
	f := newFixture()
	srcs := sources.DefaultSources()
	off := false
	srcs[2].Enabled = &off
	svc := f.service(t, srcs, nil)
	page := display.NewPage("c1")

	summary, err := svc.Render(context.Background(), page)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if f.media.calls != 0 {
		t.Fatalf("disabled media stage was fetched %d times", f.media.calls)
	}
	if len(summary.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(summary.Sections))
	}
	if got := len(subheaders(page)); got != 3 {
		t.Fatalf("expected 3 subheaders, got %d", got)
	}
}

func TestRenderTransportFailureWarnsOnceAndContinues(t *testing.T) {
	f := newFixture()
	f.live.result = sources.Fail("", sources.ReasonNetwork, 0, errors.New("dial tcp: connection refused"))
	log := &recordingLogger{}
	svc := f.service(t, sources.DefaultSources(), log)
	page := display.NewPage("c1")

	summary, err := svc.Render(context.Background(), page)
	if err != nil {
		t.Fatalf("Render must not fail on source errors: %v", err)
	}

	warnings := 0
	for _, b := range page.Blocks {
		if b.Kind == display.KindWarning {
			warnings++
			if b.Text != present.LiveUnavailable {
				t.Fatalf("unexpected warning %q", b.Text)
			}
		}
	}
	if warnings != 1 {
		t.Fatalf("expected exactly one warning on the page, got %d", warnings)
	}
	if len(log.warns) != 1 {
		t.Fatalf("expected exactly one logged warning, got %v", log.warns)
	}
	if summary.Unavailable() != 1 || summary.Sections[0].Reason != sources.ReasonNetwork {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if f.apod.calls != 1 || f.media.calls != 1 {
		t.Fatal("later sections must still be fetched")
	}
}

func TestRenderLive503RequestsNoLiveImage(t *testing.T) {
	f := newFixture()
	f.live.result = sources.Fail("", sources.ReasonStatus, http.StatusServiceUnavailable, errors.New("503"))
	svc := f.service(t, sources.DefaultSources()[:1], nil)
	page := display.NewPage("c1")

	if _, err := svc.Render(context.Background(), page); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, b := range page.Blocks {
		if b.Kind == display.KindImage {
			t.Fatalf("no image expected, got %+v", b)
		}
	}
	if page.Count(display.KindWarning) != 1 {
		t.Fatalf("expected unavailable warning, got %+v", page.Blocks)
	}
}

func TestRenderComparisonsIndependentOfNetwork(t *testing.T) {
	f := newFixture()
	down := sources.Fail("", sources.ReasonNetwork, 0, errors.New("offline"))
	f.live.result, f.apod.result, f.media.result = down, down, down
	svc := f.service(t, sources.DefaultSources(), nil)

	up := display.NewPage("up")
	if _, err := newFixture().service(t, sources.DefaultSources(), nil).Render(context.Background(), up); err != nil {
		t.Fatalf("Render: %v", err)
	}
	page := display.NewPage("down")
	if _, err := svc.Render(context.Background(), page); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if page.Count(display.KindCompare) != 4 {
		t.Fatalf("expected 4 comparisons while offline, got %d", page.Count(display.KindCompare))
	}
	tail := page.Blocks[len(page.Blocks)-8:]
	upTail := up.Blocks[len(up.Blocks)-8:]
	for i := range tail {
		if tail[i].Text != upTail[i].Text || tail[i].Kind != upTail[i].Kind {
			t.Fatalf("comparison block %d differs offline: %+v vs %+v", i, tail[i], upTail[i])
		}
	}
}

func TestRenderStopsOnCancelledContext(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	f.live.onCall = cancel
	svc := f.service(t, sources.DefaultSources(), nil)

	_, err := svc.Render(ctx, display.NewPage("c1"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if f.apod.calls != 0 {
		t.Fatal("no further stages may run after cancellation")
	}
}

func TestRenderUninitialized(t *testing.T) {
	var svc *Service
	if _, err := svc.Render(context.Background(), display.NewPage("x")); err == nil {
		t.Fatal("expected error for nil service")
	}
}
