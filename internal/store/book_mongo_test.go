package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"bookreviews/internal/usecase"
)

// stageKey returns the operator of a single-element pipeline stage.
func stageKey(t *testing.T, stage bson.D) string {
	t.Helper()
	require.Len(t, stage, 1)
	return stage[0].Key
}

func TestListPipeline_StageOrder(t *testing.T) {
	pipe := listPipeline(usecase.ListParams{SortBy: usecase.SortRating}.Normalize())

	var keys []string
	for _, stage := range pipe {
		keys = append(keys, stageKey(t, stage))
	}
	// Enrichment must run before the sort so sort-by-rating sees every
	// candidate's aggregate, and the caller appends $skip/$limit after.
	assert.Equal(t, []string{"$match", "$lookup", "$addFields", "$project", "$sort"}, keys)
}

func TestListPipeline_Match(t *testing.T) {
	t.Run("no filters matches everything", func(t *testing.T) {
		pipe := listPipeline(usecase.ListParams{}.Normalize())
		match := pipe[0][0].Value.(bson.D)
		assert.Empty(t, match)
	})

	t.Run("search matches title or author case-insensitively", func(t *testing.T) {
		pipe := listPipeline(usecase.ListParams{Search: "rivers"}.Normalize())
		match := pipe[0][0].Value.(bson.D)
		require.Len(t, match, 1)
		assert.Equal(t, "$or", match[0].Key)

		or := match[0].Value.(bson.A)
		require.Len(t, or, 2)
		title := or[0].(bson.D)
		assert.Equal(t, "title", title[0].Key)
		regex := title[0].Value.(bson.D)
		assert.Equal(t, bson.D{
			{Key: "$regex", Value: "rivers"},
			{Key: "$options", Value: "i"},
		}, regex)
		author := or[1].(bson.D)
		assert.Equal(t, "author", author[0].Key)
	})

	t.Run("search text is treated literally", func(t *testing.T) {
		pipe := listPipeline(usecase.ListParams{Search: "c++ (2nd ed.)"}.Normalize())
		match := pipe[0][0].Value.(bson.D)
		or := match[0].Value.(bson.A)
		title := or[0].(bson.D)
		regex := title[0].Value.(bson.D)
		assert.Equal(t, `c\+\+ \(2nd ed\.\)`, regex[0].Value)
	})

	t.Run("genre is an exact match on top of search", func(t *testing.T) {
		pipe := listPipeline(usecase.ListParams{Search: "monsoon", Genre: "Non-fiction"}.Normalize())
		match := pipe[0][0].Value.(bson.D)
		require.Len(t, match, 2)
		assert.Equal(t, "$or", match[0].Key)
		assert.Equal(t, bson.E{Key: "genre", Value: "Non-fiction"}, match[1])
	})
}

func TestListPipeline_Sort(t *testing.T) {
	tests := []struct {
		name   string
		sortBy string
		want   bson.D
	}{
		{
			name:   "recency sorts by creation order descending",
			sortBy: usecase.SortRecency,
			want:   bson.D{{Key: "_id", Value: -1}},
		},
		{
			name:   "year sorts by publication year descending with id tiebreak",
			sortBy: usecase.SortYear,
			want:   bson.D{{Key: "year", Value: -1}, {Key: "_id", Value: -1}},
		},
		{
			name:   "rating sorts by computed average descending with id tiebreak",
			sortBy: usecase.SortRating,
			want:   bson.D{{Key: "averageRating", Value: -1}, {Key: "_id", Value: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipe := listPipeline(usecase.ListParams{SortBy: tt.sortBy}.Normalize())
			last := pipe[len(pipe)-1]
			require.Equal(t, "$sort", stageKey(t, last))
			assert.Equal(t, tt.want, last[0].Value)
		})
	}
}

func TestEnrichStages_Aggregate(t *testing.T) {
	stages := enrichStages()
	require.Len(t, stages, 3)

	lookup := stages[0][0].Value.(bson.D)
	assert.Equal(t, bson.D{
		{Key: "from", Value: "reviews"},
		{Key: "localField", Value: "_id"},
		{Key: "foreignField", Value: "bookId"},
		{Key: "as", Value: "reviews"},
	}, lookup)

	fields := stages[1][0].Value.(bson.D)
	require.Len(t, fields, 2)
	assert.Equal(t, "averageRating", fields[0].Key)
	// Books with no reviews must land on 0.0, never a missing field.
	avg := fields[0].Value.(bson.D)
	assert.Equal(t, "$ifNull", avg[0].Key)
	assert.Equal(t, "reviewsCount", fields[1].Key)

	// The joined review array itself must not leak into results.
	project := stages[2][0].Value.(bson.D)
	assert.Equal(t, bson.D{{Key: "reviews", Value: 0}}, project)
}
