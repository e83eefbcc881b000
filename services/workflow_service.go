package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"socialsound_server/models"
)

// Outcomes of a decide call. "accepted-without-conversation" means the
// status write landed but the conversation write failed; the repair path
// (RepairConversation) recovers from that state.
const (
	OutcomeRejected                    = "rejected"
	OutcomeAcceptedWithConversation    = "accepted-with-conversation"
	OutcomeAcceptedWithoutConversation = "accepted-without-conversation"
)

// WorkflowService is the state machine tying the like store and the
// conversation store together: pending → accepted | rejected, both
// terminal, with a conversation ensured on acceptance.
type WorkflowService struct {
	Likes         *LikeService
	Conversations *ConversationService

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewWorkflowService wires the orchestrator over the two stores.
func NewWorkflowService(likes *LikeService, conversations *ConversationService) *WorkflowService {
	return &WorkflowService{
		Likes:         likes,
		Conversations: conversations,
		inFlight:      make(map[string]struct{}),
	}
}

// DecideRequest identifies the like (by id and addressee partition), the
// asserted acting user, and the decision to apply.
type DecideRequest struct {
	LikeID       string `json:"likeId"`
	ToUserID     string `json:"toUserId"`
	ActingUserID string `json:"actingUserId"`
	Decision     string `json:"decision"`
}

// Decide applies an accept/reject decision to a pending like. At most one
// decide per like id runs at a time within this process; a second caller
// is turned away immediately without touching the store. No automatic
// retry happens here; retries belong to the caller.
func (s *WorkflowService) Decide(ctx context.Context, req DecideRequest) (string, error) {
	if req.Decision != models.DecisionAccept && req.Decision != models.DecisionReject {
		return "", fmt.Errorf("unsupported decision: %s", req.Decision)
	}

	if !s.acquire(req.LikeID) {
		log.Printf("⚠️ Decide for like %s rejected: already in flight", req.LikeID)
		return "", ErrDecisionInFlight
	}
	defer s.release(req.LikeID)

	like, err := s.Likes.GetReceivedLike(ctx, req.LikeID, req.ToUserID)
	if err != nil {
		return "", err
	}
	if req.ActingUserID != like.ToUserID {
		return "", ErrUnauthorized
	}
	if like.IsDecided() {
		return "", ErrInvalidTransition
	}

	if req.Decision == models.DecisionReject {
		if _, err := s.Likes.SetStatus(ctx, req.LikeID, req.ToUserID, models.LikeStatusRejected); err != nil {
			return "", err
		}
		log.Printf("💔 Like %s rejected by %s", req.LikeID, req.ActingUserID)
		return OutcomeRejected, nil
	}

	accepted, err := s.Likes.SetStatus(ctx, req.LikeID, req.ToUserID, models.LikeStatusAccepted)
	if err != nil {
		return "", err
	}

	// Status is already accepted at this point. A conversation failure is
	// reported to the caller, who recovers via RepairConversation; a
	// second Decide would fail the pending precondition.
	if _, err := s.Conversations.EnsureConversation(ctx, accepted, like.ToUserID); err != nil {
		log.Printf("❌ Like %s accepted but conversation failed: %v", req.LikeID, err)
		return OutcomeAcceptedWithoutConversation, err
	}

	log.Printf("🎉 Like %s accepted by %s, conversation ready", req.LikeID, req.ActingUserID)
	return OutcomeAcceptedWithConversation, nil
}

// RepairConversation is the recovery path for a like that is already
// accepted but has no conversation yet. It re-invokes the idempotent
// conversation creation without going through the pending check.
func (s *WorkflowService) RepairConversation(ctx context.Context, likeID, userID string) (*models.Conversation, error) {
	if !s.acquire(likeID) {
		return nil, ErrDecisionInFlight
	}
	defer s.release(likeID)

	like, err := s.Likes.GetReceivedLike(ctx, likeID, userID)
	if err != nil {
		return nil, err
	}
	if like.EffectiveStatus() != models.LikeStatusAccepted {
		return nil, ErrInvalidTransition
	}

	return s.Conversations.EnsureConversation(ctx, like, like.ToUserID)
}

// acquire marks a like id as in flight. Returns false if it already is.
func (s *WorkflowService) acquire(likeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[likeID]; busy {
		return false
	}
	s.inFlight[likeID] = struct{}{}
	return true
}

// release is deferred on every path so a cancelled call can never wedge a
// like id for the process lifetime.
func (s *WorkflowService) release(likeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, likeID)
}
