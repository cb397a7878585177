package metrics

// RecordSessionEvent counts an emitted session event by type
func RecordSessionEvent(eventType string) {
	SessionEvents.WithLabelValues(eventType).Inc()
}

// RecordRecompute counts a nutrition recompute by outcome
func RecordRecompute(outcome string) {
	NutritionRecomputes.WithLabelValues(outcome).Inc()
}

// RecordSubmission counts a recipe submission by outcome
func RecordSubmission(outcome string) {
	RecipeSubmissions.WithLabelValues(outcome).Inc()
}

// RecordListDelete counts items removed from a user list
func RecordListDelete(list string, count int) {
	ListItemsDeleted.WithLabelValues(list).Add(float64(count))
}

// RecordCatalogLookup counts a catalog cache lookup
func RecordCatalogLookup(hit bool) {
	if hit {
		CatalogCacheLookups.WithLabelValues(ResultHit).Inc()
		return
	}
	CatalogCacheLookups.WithLabelValues(ResultMiss).Inc()
}
