package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestNewFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every child is nil")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner, nil); h != inner {
		t.Fatal("expected single live handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsChildLevels(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	infoHandler := slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugHandler := slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	h := newFanoutHandler(infoHandler, debugHandler)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected fanout enabled for debug when one child accepts it")
	}

	slog.New(h).Debug("debug only")
	if infoBuf.Len() != 0 {
		t.Fatal("info handler should not receive debug records")
	}
	if debugBuf.Len() == 0 {
		t.Fatal("debug handler should receive debug records")
	}
}

func TestFanoutHandlerPropagatesAttrsAndGroups(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h := newFanoutHandler(slog.NewJSONHandler(&buf1, nil), slog.NewJSONHandler(&buf2, nil))

	logger := slog.New(h).With(FieldBrand, "hama").WithGroup("stats")
	logger.Info("extracted", slog.Int("matched", 3))

	for name, buf := range map[string]*bytes.Buffer{"first": &buf1, "second": &buf2} {
		out := buf.Bytes()
		if !bytes.Contains(out, []byte(`"brand":"hama"`)) {
			t.Fatalf("%s: expected brand attr, got %s", name, out)
		}
		if !bytes.Contains(out, []byte(`"stats":{"matched":3}`)) {
			t.Fatalf("%s: expected grouped attr, got %s", name, out)
		}
	}
}

func TestTeeLogger(t *testing.T) {
	var baseBuf, teeBuf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&baseBuf, nil))

	TeeLogger(base, slog.NewJSONHandler(&teeBuf, nil)).Info("teed message")
	if baseBuf.Len() == 0 || teeBuf.Len() == 0 {
		t.Fatalf("expected output in both buffers, got base=%q tee=%q", baseBuf.String(), teeBuf.String())
	}

	teeBuf.Reset()
	TeeLogger(nil, slog.NewJSONHandler(&teeBuf, nil)).Info("no base")
	if teeBuf.Len() == 0 {
		t.Fatal("expected output in tee buffer without base")
	}
}
