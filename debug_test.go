package billow

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDebugLogOffByDefault(t *testing.T) {
	var buf bytes.Buffer
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	s := newTestScene(t)
	addBox(s, "b", mgl64.Vec3{}, nil)
	var surf recordingSurface
	s.render(&surf)

	if buf.Len() != 0 {
		t.Errorf("expected no output outside debug mode, got: %s", buf.String())
	}
	if st := s.FrameStats(); st.ProjectTime != 0 || st.SortTime != 0 || st.SubmitTime != 0 {
		t.Errorf("timings should stay zero outside debug mode: %+v", st)
	}
}

func TestDebugLogSkippedBillboard(t *testing.T) {
	var buf bytes.Buffer
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	s := newTestScene(t)
	s.SetDebugMode(true)
	s.AddBillboard(NewBillboard("singular", NewTemplate("wide", 2, 1, nil), CornersFour, mgl64.Vec3{1, -8, -2}))
	var surf recordingSurface
	s.render(&surf)

	if !bytes.Contains(buf.Bytes(), []byte("billboard skipped")) || !bytes.Contains(buf.Bytes(), []byte("name=singular")) {
		t.Errorf("expected a skip record, got: %s", buf.String())
	}
}

func TestDebugLogRequiresDebugMode(t *testing.T) {
	var buf bytes.Buffer
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	s := newTestScene(t)
	s.debugLog(FrameStats{Drawn: 3})
	if buf.Len() != 0 {
		t.Errorf("debugLog should be silent outside debug mode, got: %s", buf.String())
	}
}
