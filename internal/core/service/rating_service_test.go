package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fashio-ai/styling-api/internal/core/domain"
	"github.com/fashio-ai/styling-api/internal/core/ports"
)

func newRatingFixture(gw *stubGateway) (*RatingService, *memRatingStore, *stubLocker) {
	store := newMemRatingStore()
	locks := newStubLocker()
	return NewRatingService(gw, store, locks, discardLogger), store, locks
}

func rateOnce(t *testing.T, svc *RatingService) *ports.RatingOutcome {
	t.Helper()
	outcome, err := svc.RateOutfit(context.Background(), "user_1", []string{pngDataURL(1)})
	if err != nil {
		t.Fatalf("RateOutfit failed: %v", err)
	}
	return outcome
}

// ---------------------------------------------------------------------------
// RateOutfit
// ---------------------------------------------------------------------------

func TestRatingService_RateOutfit_Success(t *testing.T) {
	gw := &stubGateway{rating: sampleRating()}
	svc, store, _ := newRatingFixture(gw)

	outcome := rateOnce(t, svc)

	if outcome.RatingID == "" {
		t.Fatal("rating id must be assigned")
	}
	if outcome.Rating.OverallScore != 8 {
		t.Errorf("overall score wrong: %v", outcome.Rating.OverallScore)
	}
	if !outcome.Rating.FaceDetected() {
		t.Error("expected face detected for facial score 7")
	}
	if _, ok := store.Get(outcome.RatingID); !ok {
		t.Error("session must be stored for follow-up chat")
	}
}

func TestRatingService_RateOutfit_NoFace(t *testing.T) {
	rating := sampleRating()
	rating.FacialAnalysis = domain.Analysis{Score: 0, Comments: "No face visible in the photos."}
	gw := &stubGateway{rating: rating}
	svc, _, _ := newRatingFixture(gw)

	outcome := rateOnce(t, svc)
	if outcome.Rating.FaceDetected() {
		t.Error("facial score 0 must mean no face detected")
	}
}

func TestRatingService_RateOutfit_GatewayError(t *testing.T) {
	gw := &stubGateway{ratingErr: domain.ErrMalformedRating}
	svc, store, locks := newRatingFixture(gw)

	_, err := svc.RateOutfit(context.Background(), "user_1", []string{pngDataURL(1)})
	if !errors.Is(err, domain.ErrMalformedRating) {
		t.Fatalf("expected ErrMalformedRating, got %v", err)
	}
	if len(store.sessions) != 0 {
		t.Error("no session may be created on failure")
	}
	if locks.held["user_1:rating"] {
		t.Error("busy flag must be released on failure")
	}
}

func TestRatingService_RateOutfit_TooManyImages(t *testing.T) {
	gw := &stubGateway{rating: sampleRating()}
	svc, _, _ := newRatingFixture(gw)

	images := make([]string, domain.MaxOutfitImages+1)
	for i := range images {
		images[i] = pngDataURL(i)
	}
	if _, err := svc.RateOutfit(context.Background(), "user_1", images); !errors.Is(err, domain.ErrTooManyImages) {
		t.Fatalf("expected ErrTooManyImages, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Chat
// ---------------------------------------------------------------------------

func TestRatingService_Chat_Success(t *testing.T) {
	gw := &stubGateway{rating: sampleRating(), chatReply: "The jacket is doing the heavy lifting."}
	svc, _, _ := newRatingFixture(gw)
	outcome := rateOnce(t, svc)

	chat, err := svc.Chat(context.Background(), "user_1", outcome.RatingID, "What works best here?")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if chat.Reply != "The jacket is doing the heavy lifting." {
		t.Errorf("reply wrong: %q", chat.Reply)
	}
	if chat.PolicyRedirected {
		t.Error("plain question must not be redirected")
	}

	transcript, err := svc.Transcript(context.Background(), "user_1", outcome.RatingID)
	if err != nil {
		t.Fatalf("Transcript failed: %v", err)
	}
	if len(transcript) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(transcript))
	}
	if transcript[0].Role != domain.ChatRoleUser || transcript[1].Role != domain.ChatRoleModel {
		t.Error("transcript roles wrong")
	}
}

func TestRatingService_Chat_ResendsHistory(t *testing.T) {
	gw := &stubGateway{rating: sampleRating(), chatReply: "reply"}
	svc, _, _ := newRatingFixture(gw)
	outcome := rateOnce(t, svc)

	for _, msg := range []string{"first", "second"} {
		if _, err := svc.Chat(context.Background(), "user_1", outcome.RatingID, msg); err != nil {
			t.Fatalf("Chat failed: %v", err)
		}
	}

	// The second call must have carried the first full turn as history.
	if len(gw.lastHistory) != 2 {
		t.Fatalf("expected 2 history messages, got %d", len(gw.lastHistory))
	}
	if gw.lastHistory[0].Text != "first" {
		t.Errorf("history wrong: %+v", gw.lastHistory)
	}
}

func TestRatingService_Chat_FailedTurnRetractsUserMessage(t *testing.T) {
	gw := &stubGateway{rating: sampleRating()}
	svc, _, _ := newRatingFixture(gw)
	outcome := rateOnce(t, svc)

	gw.chatErr = errors.New("backend down")
	if _, err := svc.Chat(context.Background(), "user_1", outcome.RatingID, "hello?"); err == nil {
		t.Fatal("expected error from gateway")
	}

	transcript, _ := svc.Transcript(context.Background(), "user_1", outcome.RatingID)
	if len(transcript) != 0 {
		t.Fatalf("failed turn must leave transcript empty, got %d messages", len(transcript))
	}

	// The flow stays usable: a later successful turn appends normally.
	gw.chatErr = nil
	gw.chatReply = "back again"
	if _, err := svc.Chat(context.Background(), "user_1", outcome.RatingID, "hello again"); err != nil {
		t.Fatalf("Chat failed after recovery: %v", err)
	}
	transcript, _ = svc.Transcript(context.Background(), "user_1", outcome.RatingID)
	if len(transcript) != 2 {
		t.Fatalf("expected 2 messages after recovery, got %d", len(transcript))
	}
}

func TestRatingService_Chat_UnknownRating(t *testing.T) {
	gw := &stubGateway{rating: sampleRating()}
	svc, _, _ := newRatingFixture(gw)

	_, err := svc.Chat(context.Background(), "user_1", "missing", "hi")
	if !errors.Is(err, domain.ErrRatingNotFound) {
		t.Fatalf("expected ErrRatingNotFound, got %v", err)
	}
}

func TestRatingService_Chat_OtherUsersRatingHidden(t *testing.T) {
	gw := &stubGateway{rating: sampleRating(), chatReply: "reply"}
	svc, _, _ := newRatingFixture(gw)
	outcome := rateOnce(t, svc)

	_, err := svc.Chat(context.Background(), "user_2", outcome.RatingID, "hi")
	if !errors.Is(err, domain.ErrRatingNotFound) {
		t.Fatalf("expected ErrRatingNotFound for foreign session, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Comparison policy
// ---------------------------------------------------------------------------

func TestRatingService_Chat_ComparisonRedirected(t *testing.T) {
	gw := &stubGateway{rating: sampleRating()}
	svc, _, _ := newRatingFixture(gw)
	outcome := rateOnce(t, svc)

	chat, err := svc.Chat(context.Background(), "user_1", outcome.RatingID, "What percent of people look better than me?")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if !chat.PolicyRedirected {
		t.Fatal("comparison request must be redirected")
	}
	if digitsRe.MatchString(chat.Reply) {
		t.Errorf("redirection must contain no digits or percent signs: %q", chat.Reply)
	}
	if !strings.Contains(chat.Reply, "What I can tell you") {
		t.Errorf("redirection must include a positive turn: %q", chat.Reply)
	}

	// The gateway was never consulted.
	if gw.lastHistory != nil {
		t.Error("redirected message must not reach the backend")
	}

	// A redirected turn is still a successful turn and lands in the transcript.
	transcript, _ := svc.Transcript(context.Background(), "user_1", outcome.RatingID)
	if len(transcript) != 2 {
		t.Fatalf("expected redirected turn in transcript, got %d messages", len(transcript))
	}
}

func TestRatingService_Chat_ComparisonReplySanitizesRating(t *testing.T) {
	rating := sampleRating()
	rating.Summary = "You scored 8 out of 10, top 5% easily."
	gw := &stubGateway{rating: rating}
	svc, _, _ := newRatingFixture(gw)
	outcome := rateOnce(t, svc)

	chat, err := svc.Chat(context.Background(), "user_1", outcome.RatingID, "How do I rank compared to most people?")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if !chat.PolicyRedirected {
		t.Fatal("expected redirection")
	}
	if digitsRe.MatchString(chat.Reply) {
		t.Errorf("rating-derived compliment leaked quantities: %q", chat.Reply)
	}
}

func TestRatingService_Chat_ComparisonRunsUnderChatFlag(t *testing.T) {
	gw := &stubGateway{rating: sampleRating()}
	svc, _, locks := newRatingFixture(gw)
	outcome := rateOnce(t, svc)

	// A redirected turn writes to the transcript, so it contends on the
	// same flag as a backend turn.
	locks.held["user_1:rating_chat"] = true
	_, err := svc.Chat(context.Background(), "user_1", outcome.RatingID, "How do I rank compared to most people?")
	if !errors.Is(err, domain.ErrActionInProgress) {
		t.Fatalf("expected ErrActionInProgress while a chat turn is in flight, got %v", err)
	}
	transcript, _ := svc.Transcript(context.Background(), "user_1", outcome.RatingID)
	if len(transcript) != 0 {
		t.Fatalf("rejected turn must not touch the transcript, got %d messages", len(transcript))
	}

	delete(locks.held, "user_1:rating_chat")
	chat, err := svc.Chat(context.Background(), "user_1", outcome.RatingID, "How do I rank compared to most people?")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if !chat.PolicyRedirected {
		t.Fatal("expected redirection")
	}
	if locks.held["user_1:rating_chat"] {
		t.Error("chat flag must be released after a redirected turn")
	}
}

func TestSeeksComparison(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"What percent of people are better looking than me?", true},
		{"How do I rank compared to most men?", true},
		{"Am I in the top percentile of the population?", true},
		{"On a scale of one to ten, how do others see me?", true},
		{"What do you think of my shoes?", false},
		{"Would most people like this jacket?", false},
		{"What percent cotton should a summer shirt be?", false},
	}
	for _, tc := range cases {
		if got := seeksComparison(tc.message); got != tc.want {
			t.Errorf("seeksComparison(%q) = %v, want %v", tc.message, got, tc.want)
		}
	}
}
