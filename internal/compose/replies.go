// Package compose builds reply drafts from fixed bodies and optional names.
package compose

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jonathan/autoreply/internal/llm"
	"github.com/jonathan/autoreply/internal/types"
)

var replyBodies = [...]string{
	"Yes, I'm interested. My number is +12149098059.",
	"Thanks for reaching out. I'm currently not looking to move but will ping at a later time.",
}

// Bodies returns the reply bodies in display order.
func Bodies() []string {
	return append([]string(nil), replyBodies[:]...)
}

// Greeting addresses the recruiter by name when known.
func Greeting(p types.Personalization) string {
	if p.RecruiterName != nil && *p.RecruiterName != "" {
		return "Hi " + *p.RecruiterName + ","
	}
	return "Hi,"
}

// Closing signs with the candidate's name when known.
func Closing(p types.Personalization) string {
	if p.UserName != nil && *p.UserName != "" {
		return "Thanks\n" + *p.UserName
	}
	return "Thanks"
}

// Compose builds one reply per body as "<greeting> <body>\n\n<closing>".
func Compose(p types.Personalization) []string {
	greeting := Greeting(p)
	closing := Closing(p)

	replies := make([]string, 0, len(replyBodies))
	for _, body := range replyBodies {
		replies = append(replies, greeting+" "+body+"\n\n"+closing)
	}
	return replies
}

// Polish proofreads each reply. Any failure returns the original replies
// unchanged; an empty correction keeps that reply's original text.
func Polish(ctx context.Context, proofreader llm.Proofreader, replies []string) []string {
	if len(replies) == 0 {
		return []string{}
	}
	if proofreader == nil || !proofreader.Available() {
		return replies
	}

	polished := make([]string, 0, len(replies))
	for _, reply := range replies {
		corrected, err := proofreader.Proofread(ctx, reply)
		if err != nil {
			slog.Warn("proofreader failed, returning unpolished replies", "error", err)
			return replies
		}
		if strings.TrimSpace(corrected) == "" {
			corrected = reply
		}
		polished = append(polished, corrected)
	}
	return polished
}
