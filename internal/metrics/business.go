package metrics

// Like targets
const (
	TargetPost            = "post"
	TargetComment         = "comment"
	TargetUserPost        = "user_post"
	TargetUserPostComment = "user_post_comment"
)

// Submission outcomes
const (
	OutcomeAccepted    = "accepted"
	OutcomeRateLimited = "rate_limited"
	OutcomeInvalid     = "invalid"
)

// RecordLikeToggle records a like toggle and whether it ended liked
func (m *Metrics) RecordLikeToggle(target string, liked bool) {
	m.safeExecute("RecordLikeToggle", func() {
		result := "unliked"
		if liked {
			result = "liked"
		}
		m.LikesToggledTotal.WithLabelValues(target, result).Inc()
	})
}

// IncrementCommentCreated increments the comment counter for target
func (m *Metrics) IncrementCommentCreated(target string) {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentsCreatedTotal.WithLabelValues(target).Inc()
	})
}

// RecordUserPostSubmission records a submission outcome
func (m *Metrics) RecordUserPostSubmission(outcome string) {
	m.safeExecute("RecordUserPostSubmission", func() {
		m.UserPostSubmissionsTotal.WithLabelValues(outcome).Inc()
	})
}

// RecordModeration records approve, reject, publish, unpublish and delete actions
func (m *Metrics) RecordModeration(action string) {
	m.safeExecute("RecordModeration", func() {
		m.ModerationTransitionsTotal.WithLabelValues(action).Inc()
	})
}

// RecordFeedCache records a feed cache hit, miss or error
func (m *Metrics) RecordFeedCache(result string) {
	m.safeExecute("RecordFeedCache", func() {
		m.FeedCacheRequestsTotal.WithLabelValues(result).Inc()
	})
}

// SetPendingUserPosts sets the pending queue gauge
func (m *Metrics) SetPendingUserPosts(count int64) {
	m.safeExecute("SetPendingUserPosts", func() {
		m.PendingUserPosts.Set(float64(count))
	})
}

// SetPublishedEditorialPosts sets the published editorial gauge
func (m *Metrics) SetPublishedEditorialPosts(count int64) {
	m.safeExecute("SetPublishedEditorialPosts", func() {
		m.PublishedEditorialPosts.Set(float64(count))
	})
}

// SetApprovedUserPosts sets the approved community gauge
func (m *Metrics) SetApprovedUserPosts(count int64) {
	m.safeExecute("SetApprovedUserPosts", func() {
		m.ApprovedUserPosts.Set(float64(count))
	})
}
