package production

import (
	"context"
	"fmt"
	"testing"

	"github.com/vistalabs/vista/internal/concurrency"
	"github.com/vistalabs/vista/internal/database/memory"
	"github.com/vistalabs/vista/internal/domain"
)

// wideFormula builds a product using n ingredients, each with plenty of stock
func wideFormula(n int) domain.ProductionSnapshot {
	s := domain.ProductionSnapshot{
		Product: domain.Product{ID: "serum", Name: "Serum", PackagingID: "vial", SalePrice: 12},
		Packaging: &domain.Packaging{
			ID: "vial", Name: "30ml Vial", CapacityMl: 30, Stock: 1 << 40, CostPerPiece: 0.4,
		},
		Ingredients: make(map[string]domain.Ingredient, n),
	}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("ing-%03d", i)
		s.Product.Formula = append(s.Product.Formula, domain.FormulaItem{IngredientID: id, AmountPerUnitVolume: 1000 / float64(n)})
		s.Ingredients[id] = domain.Ingredient{ID: id, Name: id, Stock: 1e15, DisplayUnit: domain.UnitKilogram, CostPerBaseUnit: 0.01}
	}
	return s
}

func BenchmarkSimulate(b *testing.B) {
	for _, n := range []int{1, 10, 100} {
		snapshot := wideFormula(n)
		b.Run(fmt.Sprintf("units/ingredients=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Simulate(snapshot, 500, domain.ModeUnits)
			}
		})
		b.Run(fmt.Sprintf("batch/ingredients=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Simulate(snapshot, 15, domain.ModeBatchVolume)
			}
		})
	}
}

func BenchmarkExecute(b *testing.B) {
	in := ExecuteInput{Snapshot: wideFormula(25), UnitsToProduce: 500, BatchVolumeUnits: 15}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Execute(in)
	}
}

// BenchmarkService_Execute measures a full locked commit against the memory store
func BenchmarkService_Execute(b *testing.B) {
	ctx := context.Background()
	store := memory.NewStore()
	snapshot := wideFormula(10)
	for _, ing := range snapshot.Ingredients {
		if err := store.CreateIngredient(ctx, ing); err != nil {
			b.Fatal(err)
		}
	}
	if err := store.CreatePackaging(ctx, *snapshot.Packaging); err != nil {
		b.Fatal(err)
	}
	if err := store.CreateProduct(ctx, snapshot.Product); err != nil {
		b.Fatal(err)
	}

	svc := NewService(store, nil, concurrency.NewLockManager(), domain.ModeUnits)
	req := ExecuteRequest{ProductID: "serum", UnitsToProduce: 1, BatchVolumeUnits: 0.03}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result, err := svc.Execute(ctx, req)
		if err != nil {
			b.Fatal(err)
		}
		if !result.Success {
			b.Fatalf("run rejected: %s", result.Message)
		}
	}
}
