package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"support-orchestrator/internal/model"
	"support-orchestrator/internal/router"
	"support-orchestrator/internal/support"
	"support-orchestrator/pkg/chatwoot"
	"support-orchestrator/pkg/knowledge"
	"support-orchestrator/pkg/textnorm"
)

// HandleIncoming classifies one message and runs the matching dispatch.
// State side effects execute in a fixed order (reply, labels, attributes,
// assignment, reopen); each call is best effort and a failure never blocks
// the calls after it.
func (uc *implUseCase) HandleIncoming(ctx context.Context, input support.HandleInput) (support.HandleOutput, error) {
	msg := input.Message
	if strings.TrimSpace(msg.Content) == "" {
		return support.HandleOutput{}, support.ErrEmptyMessage
	}

	decision := uc.classifier.Classify(ctx, msg.Content, msg.Labels)
	uc.l.Infof(ctx, "HandleIncoming: conversation=%d route=%s reason=%s first=%t",
		msg.ConversationID, decision.Route, decision.Reason, msg.FirstInteraction)

	// Resolved regardless of route: a low-confidence mec answer still needs
	// a team id for the escalation.
	teamID := uc.resolveHumanTeam(ctx, decision, msg)

	switch decision.Route {
	case router.RouteHuman:
		return uc.dispatchHuman(ctx, msg, decision, teamID), nil
	case router.RouteDirect:
		return uc.dispatchDirect(ctx, msg, decision), nil
	default:
		return uc.dispatchMec(ctx, msg, decision, teamID)
	}
}

func (uc *implUseCase) dispatchHuman(ctx context.Context, msg model.IncomingMessage, decision router.IntentDecision, teamID int) support.HandleOutput {
	reply := ""
	if decision.Reason == router.ReasonExplicitHumanRequest {
		reply = replyHumanConfirmation
		uc.sideEffect(ctx, msg.ConversationID, "send confirmation",
			uc.conv.SendMessage(ctx, msg.ConversationID, msg.AccountID, reply))
	}

	labels := uc.composeStateLabels(msg.Labels, uc.cfg.Labels.Human)
	uc.sideEffect(ctx, msg.ConversationID, "set labels",
		uc.conv.SetLabels(ctx, msg.ConversationID, msg.AccountID, labels))

	uc.sideEffect(ctx, msg.ConversationID, "update attributes",
		uc.conv.UpdateConversationMeta(ctx, msg.ConversationID, msg.AccountID, chatwoot.MetaUpdate{
			CustomAttributes: uc.attributes(msg, decision, handledByHumanTeam, 0),
		}))

	if teamID > 0 {
		uc.sideEffect(ctx, msg.ConversationID, "assign team",
			uc.conv.AssignTeam(ctx, msg.ConversationID, msg.AccountID, teamID))
	}

	uc.sideEffect(ctx, msg.ConversationID, "reopen",
		uc.conv.SetConversationOpen(ctx, msg.ConversationID, msg.AccountID))

	return support.HandleOutput{
		Decision:  decision,
		Reply:     reply,
		Labels:    labels,
		TeamID:    teamID,
		HandledBy: handledByHumanTeam,
	}
}

func (uc *implUseCase) dispatchDirect(ctx context.Context, msg model.IncomingMessage, decision router.IntentDecision) support.HandleOutput {
	reply := replyDirectGeneric
	if _, ok := greetings[strings.Trim(textnorm.Normalize(msg.Content), greetingTrimCutset)]; ok {
		reply = replyGreeting
	}
	uc.sideEffect(ctx, msg.ConversationID, "send reply",
		uc.conv.SendMessage(ctx, msg.ConversationID, msg.AccountID, reply))

	labels := uc.composeStateLabels(msg.Labels, uc.cfg.Labels.Orchestrator)
	uc.sideEffect(ctx, msg.ConversationID, "set labels",
		uc.conv.SetLabels(ctx, msg.ConversationID, msg.AccountID, labels))

	uc.sideEffect(ctx, msg.ConversationID, "update attributes",
		uc.conv.UpdateConversationMeta(ctx, msg.ConversationID, msg.AccountID, chatwoot.MetaUpdate{
			CustomAttributes: uc.attributes(msg, decision, handledByOrchestrator, directConfidence),
			ClearAssignment:  true,
		}))

	uc.sideEffect(ctx, msg.ConversationID, "reopen",
		uc.conv.SetConversationOpen(ctx, msg.ConversationID, msg.AccountID))

	return support.HandleOutput{
		Decision:   decision,
		Reply:      reply,
		Labels:     labels,
		Confidence: directConfidence,
		HandledBy:  handledByOrchestrator,
	}
}

func (uc *implUseCase) dispatchMec(ctx context.Context, msg model.IncomingMessage, decision router.IntentDecision, teamID int) (support.HandleOutput, error) {
	session := strconv.Itoa(msg.ConversationID)
	answer, err := uc.knowledge.Ask(ctx, msg.Content, session, knowledge.Channel(msg.Channel))
	if err != nil {
		uc.l.Errorf(ctx, "HandleIncoming: conversation=%d knowledge query failed: %v", msg.ConversationID, err)
		return support.HandleOutput{}, fmt.Errorf("%w: %v", support.ErrKnowledgeQuery, err)
	}

	if answer.Confidence >= uc.cfg.ConfidenceThreshold {
		uc.sideEffect(ctx, msg.ConversationID, "send answer",
			uc.conv.SendMessage(ctx, msg.ConversationID, msg.AccountID, answer.Text))

		labels := uc.composeStateLabels(msg.Labels, uc.cfg.Labels.Mec)
		uc.sideEffect(ctx, msg.ConversationID, "set labels",
			uc.conv.SetLabels(ctx, msg.ConversationID, msg.AccountID, labels))

		uc.sideEffect(ctx, msg.ConversationID, "update attributes",
			uc.conv.UpdateConversationMeta(ctx, msg.ConversationID, msg.AccountID, chatwoot.MetaUpdate{
				CustomAttributes: uc.attributes(msg, decision, handledByMec, answer.Confidence),
				ClearAssignment:  true,
			}))

		uc.sideEffect(ctx, msg.ConversationID, "reopen",
			uc.conv.SetConversationOpen(ctx, msg.ConversationID, msg.AccountID))

		return support.HandleOutput{
			Decision:   decision,
			Reply:      answer.Text,
			Labels:     labels,
			Confidence: answer.Confidence,
			HandledBy:  handledByMec,
		}, nil
	}

	uc.l.Warnf(ctx, "HandleIncoming: conversation=%d confidence %.2f below threshold %.2f, escalating",
		msg.ConversationID, answer.Confidence, uc.cfg.ConfidenceThreshold)

	uc.sideEffect(ctx, msg.ConversationID, "send escalation notice",
		uc.conv.SendMessage(ctx, msg.ConversationID, msg.AccountID, replyLowConfidence))

	labels := uc.composeStateLabels(msg.Labels, uc.cfg.Labels.Human, uc.cfg.Labels.Failure)
	uc.sideEffect(ctx, msg.ConversationID, "set labels",
		uc.conv.SetLabels(ctx, msg.ConversationID, msg.AccountID, labels))

	uc.sideEffect(ctx, msg.ConversationID, "update attributes",
		uc.conv.UpdateConversationMeta(ctx, msg.ConversationID, msg.AccountID, chatwoot.MetaUpdate{
			CustomAttributes: uc.attributes(msg, decision, handledByLowConfidenceTeam, answer.Confidence),
			TeamID:           teamID,
		}))

	uc.sideEffect(ctx, msg.ConversationID, "reopen",
		uc.conv.SetConversationOpen(ctx, msg.ConversationID, msg.AccountID))

	return support.HandleOutput{
		Decision:   decision,
		Reply:      replyLowConfidence,
		Labels:     labels,
		TeamID:     teamID,
		Confidence: answer.Confidence,
		HandledBy:  handledByLowConfidenceTeam,
	}, nil
}

// sideEffect logs a failed conversation call with enough context to diagnose
// it and moves on.
func (uc *implUseCase) sideEffect(ctx context.Context, conversationID int, call string, err error) {
	if err != nil {
		uc.l.Errorf(ctx, "HandleIncoming: conversation=%d %s failed: %v", conversationID, call, err)
	}
}

func (uc *implUseCase) attributes(msg model.IncomingMessage, decision router.IntentDecision, handledBy string, confidence float64) map[string]interface{} {
	return map[string]interface{}{
		attrRoute:            string(decision.Route),
		attrReason:           string(decision.Reason),
		attrTimestamp:        time.Now().UTC().Format(time.RFC3339),
		attrFirstInteraction: msg.FirstInteraction,
		attrHandledBy:        handledBy,
		attrConfidence:       confidence,
	}
}
