package entity

import "time"

// MaxFeedbackCommentLength bounds the free-text part of a vote, in characters.
const MaxFeedbackCommentLength = 1000

// Feedback is a reader's answer to "was this article helpful?".
type Feedback struct {
	ID        int64
	ArticleID int64
	Helpful   bool
	Comment   string
	CreatedAt time.Time
}

// FeedbackSummary aggregates the votes of one article.
type FeedbackSummary struct {
	ArticleID int64
	Helpful   int64
	Unhelpful int64
}

// FeedbackAlert is what editors receive when a reader reports an unhelpful article.
type FeedbackAlert struct {
	Feedback     *Feedback
	ArticleTitle string
	ArticleURL   string
}
