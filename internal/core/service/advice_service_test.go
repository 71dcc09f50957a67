package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
)

func adviceInput(images ...string) ports.AdviceInput {
	return ports.AdviceInput{
		UserID: "user_1",
		Prompt: "What do you think of this outfit?",
		Images: images,
	}
}

func TestAdviceService_GetAdvice_SplitsVisualization(t *testing.T) {
	gw := &stubGateway{
		adviceText: "Great color pairing, try a slimmer belt.\nVISUALIZE: A man in a navy suit with a slim brown belt",
	}
	svc := NewAdviceService(gw, newStubLocker(), discardLogger)

	outcome, err := svc.GetAdvice(context.Background(), adviceInput(pngDataURL(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Advice != "Great color pairing, try a slimmer belt." {
		t.Errorf("advice wrong: %q", outcome.Advice)
	}
	if outcome.VisualizationPrompt != "A man in a navy suit with a slim brown belt" {
		t.Errorf("visualization prompt wrong: %q", outcome.VisualizationPrompt)
	}
	if strings.Contains(outcome.Advice, VisualizationMarker) {
		t.Error("marker must not leak into advice text")
	}
	if outcome.AdviceID == "" {
		t.Error("advice id must be assigned")
	}
}

func TestAdviceService_GetAdvice_NoMarker(t *testing.T) {
	gw := &stubGateway{adviceText: "Solid look, keep the sneakers."}
	svc := NewAdviceService(gw, newStubLocker(), discardLogger)

	outcome, err := svc.GetAdvice(context.Background(), adviceInput(pngDataURL(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Advice != "Solid look, keep the sneakers." {
		t.Errorf("advice wrong: %q", outcome.Advice)
	}
	if outcome.VisualizationPrompt != "" {
		t.Errorf("expected empty visualization prompt, got %q", outcome.VisualizationPrompt)
	}
}

func TestAdviceService_GetAdvice_PassesSources(t *testing.T) {
	gw := &stubGateway{
		adviceText:    "Linen is trending this season.",
		adviceSources: []ports.Source{{Title: "Trend report", URI: "https://example.com/linen"}},
	}
	svc := NewAdviceService(gw, newStubLocker(), discardLogger)

	outcome, err := svc.GetAdvice(context.Background(), adviceInput(pngDataURL(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.Sources) != 1 || outcome.Sources[0].URI != "https://example.com/linen" {
		t.Errorf("sources not propagated: %+v", outcome.Sources)
	}
}

func TestAdviceService_GetAdvice_EmptyPrompt(t *testing.T) {
	svc := NewAdviceService(&stubGateway{}, newStubLocker(), discardLogger)

	input := adviceInput(pngDataURL(1))
	input.Prompt = "   "
	if _, err := svc.GetAdvice(context.Background(), input); !errors.Is(err, domain.ErrMissingPrompt) {
		t.Fatalf("expected ErrMissingPrompt, got %v", err)
	}
}

func TestAdviceService_GetAdvice_NoImages(t *testing.T) {
	svc := NewAdviceService(&stubGateway{}, newStubLocker(), discardLogger)

	if _, err := svc.GetAdvice(context.Background(), adviceInput()); !errors.Is(err, domain.ErrNoImages) {
		t.Fatalf("expected ErrNoImages, got %v", err)
	}
}

func TestAdviceService_GetAdvice_TooManyImages(t *testing.T) {
	gw := &stubGateway{adviceText: "ok"}
	svc := NewAdviceService(gw, newStubLocker(), discardLogger)

	images := make([]string, domain.MaxOutfitImages+1)
	for i := range images {
		images[i] = pngDataURL(i)
	}
	_, err := svc.GetAdvice(context.Background(), adviceInput(images...))
	if !errors.Is(err, domain.ErrTooManyImages) {
		t.Fatalf("expected ErrTooManyImages, got %v", err)
	}
	if gw.lastImages != nil {
		t.Error("gateway must not be called when validation fails")
	}
}

func TestAdviceService_GetAdvice_InvalidImage(t *testing.T) {
	svc := NewAdviceService(&stubGateway{}, newStubLocker(), discardLogger)

	_, err := svc.GetAdvice(context.Background(), adviceInput("data:image/gif;base64,aW1hZ2Uw"))
	if !errors.Is(err, domain.ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestAdviceService_GetAdvice_BusyFlagConflict(t *testing.T) {
	locks := newStubLocker()
	svc := NewAdviceService(&stubGateway{adviceText: "ok"}, locks, discardLogger)

	if _, err := locks.Acquire(context.Background(), "user_1", ports.ActionAdvice); err != nil {
		t.Fatalf("pre-acquire failed: %v", err)
	}

	_, err := svc.GetAdvice(context.Background(), adviceInput(pngDataURL(1)))
	if !errors.Is(err, domain.ErrActionInProgress) {
		t.Fatalf("expected ErrActionInProgress, got %v", err)
	}
}

func TestAdviceService_GetAdvice_ReleasesFlagOnFailure(t *testing.T) {
	locks := newStubLocker()
	gw := &stubGateway{adviceErr: errors.New("backend down")}
	svc := NewAdviceService(gw, locks, discardLogger)

	if _, err := svc.GetAdvice(context.Background(), adviceInput(pngDataURL(1))); err == nil {
		t.Fatal("expected error from gateway")
	}
	if locks.held["user_1:advice"] {
		t.Error("busy flag must be released after a failed request")
	}
}

func TestAdviceService_Visualize_ReturnsDataURL(t *testing.T) {
	gw := &stubGateway{imageBytes: []byte{0x89, 'P', 'N', 'G'}}
	svc := NewAdviceService(gw, newStubLocker(), discardLogger)

	img, err := svc.Visualize(context.Background(), "user_1", "A navy suit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(img, "data:image/png;base64,") {
		t.Errorf("expected png data URL, got %q", img)
	}
	if len(gw.genPrompts) != 1 || gw.genPrompts[0] != "A navy suit" {
		t.Errorf("prompt not forwarded: %v", gw.genPrompts)
	}
}

func TestAdviceService_Visualize_EmptyPrompt(t *testing.T) {
	svc := NewAdviceService(&stubGateway{}, newStubLocker(), discardLogger)

	if _, err := svc.Visualize(context.Background(), "user_1", ""); !errors.Is(err, domain.ErrMissingPrompt) {
		t.Fatalf("expected ErrMissingPrompt, got %v", err)
	}
}

func TestSplitVisualization_MarkerMidText(t *testing.T) {
	advice, viz := splitVisualization("Before text VISUALIZE: after text")
	if advice != "Before text" {
		t.Errorf("advice wrong: %q", advice)
	}
	if viz != "after text" {
		t.Errorf("viz wrong: %q", viz)
	}
}

func TestSplitVisualization_NoMarker(t *testing.T) {
	advice, viz := splitVisualization("  just advice  ")
	if advice != "just advice" {
		t.Errorf("advice wrong: %q", advice)
	}
	if viz != "" {
		t.Errorf("expected empty viz, got %q", viz)
	}
}
