package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/osse101/PantryBook_Go/internal/domain"
)

// staticSource serves a fixed catalog without mock bookkeeping
type staticSource []domain.IngredientRef

func (s staticSource) SearchIngredients(context.Context, string) ([]domain.IngredientRef, error) {
	return s, nil
}

func largeCatalog(n int) staticSource {
	refs := make(staticSource, n)
	for i := range refs {
		refs[i] = domain.IngredientRef{ID: fmt.Sprint(i), Name: fmt.Sprintf("Ingrediente %05d açúcar", n-i)}
	}
	return refs
}

func BenchmarkIndex_Search(b *testing.B) {
	idx := NewIndex(largeCatalog(5000))
	if err := idx.Refresh(context.Background()); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = idx.Search("AÇÚ")
	}
}

func BenchmarkSortedForDisplay(b *testing.B) {
	refs := largeCatalog(1000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = SortedForDisplay(refs, func(r domain.IngredientRef) string { return r.Name })
	}
}

func BenchmarkCachedSource_Hit(b *testing.B) {
	src := NewCachedSource(largeCatalog(5000), 8, 0)
	ctx := context.Background()
	if _, err := src.SearchIngredients(ctx, ""); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = src.SearchIngredients(ctx, "")
	}
}
