package selection

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-admin/models"
)

func product(id, supplierID string, price int64) models.Product {
	return models.Product{
		ID:            id,
		Name:          "product " + id,
		Supplier:      models.SupplierRef{ID: supplierID},
		PurchasePrice: decimal.NewFromInt(price),
	}
}

func assertTotalMatches(t *testing.T, s *Store) {
	t.Helper()
	assert.True(t, models.SumLineItems(s.Items()).Equal(s.Total()),
		"total %s does not match line items", s.Total())
}

func TestToggle_SelectSetQuantityDeselect(t *testing.T) {
	s := NewStore()
	p1 := product("p1", "s1", 10)

	assert.True(t, s.Toggle(p1))
	require.Equal(t, []models.LineItem{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}}, s.Items())
	assert.True(t, s.Total().Equal(decimal.NewFromInt(10)))

	require.NoError(t, s.SetQuantity("p1", 3))
	assert.True(t, s.Total().Equal(decimal.NewFromInt(30)))

	assert.False(t, s.Toggle(p1))
	assert.Empty(t, s.Items())
	assert.True(t, s.Total().IsZero())
}

func TestToggle_ReselectResetsQuantity(t *testing.T) {
	s := NewStore()
	p1 := product("p1", "s1", 10)

	s.Toggle(p1)
	require.NoError(t, s.SetQuantity("p1", 5))
	s.Toggle(p1)
	s.Toggle(p1)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.True(t, s.Total().Equal(decimal.NewFromInt(10)))
}

func TestToggle_CapturesPriceAtSelection(t *testing.T) {
	s := NewStore()
	p1 := product("p1", "s1", 10)
	s.Toggle(p1)

	p1.PurchasePrice = decimal.NewFromInt(99)
	require.NoError(t, s.SetQuantity("p1", 2))

	assert.True(t, s.Items()[0].UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, s.Total().Equal(decimal.NewFromInt(20)))
}

func TestToggle_KeepsSelectionOrder(t *testing.T) {
	s := NewStore()
	s.Toggle(product("p1", "s1", 1))
	s.Toggle(product("p2", "s1", 2))
	s.Toggle(product("p3", "s1", 3))
	s.Toggle(product("p2", "s1", 2))

	var ids []string
	for _, item := range s.Items() {
		ids = append(ids, item.ProductID)
	}
	assert.Equal(t, []string{"p1", "p3"}, ids)
	assert.True(t, s.Total().Equal(decimal.NewFromInt(4)))
}

func TestSetQuantity_UnknownProductIsNoop(t *testing.T) {
	s := NewStore()
	s.Toggle(product("p1", "s1", 10))
	before := s.Items()
	total := s.Total()

	assert.NoError(t, s.SetQuantity("missing", 4))
	assert.Equal(t, before, s.Items())
	assert.True(t, total.Equal(s.Total()))
}

func TestSetQuantity_RejectsBelowOne(t *testing.T) {
	s := NewStore()
	s.Toggle(product("p1", "s1", 10))
	require.NoError(t, s.SetQuantity("p1", 2))

	for _, q := range []int{0, -1, -50} {
		assert.ErrorIs(t, s.SetQuantity("p1", q), ErrInvalidQuantity)
		assert.Equal(t, 2, s.Items()[0].Quantity)
		assert.True(t, s.Total().Equal(decimal.NewFromInt(20)))
	}
}

func TestItems_ReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Toggle(product("p1", "s1", 10))

	items := s.Items()
	items[0].Quantity = 42

	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Toggle(product("p1", "s1", 10))
	s.Toggle(product("p2", "s1", 5))

	s.Clear()

	assert.Zero(t, s.Len())
	assert.True(t, s.Total().IsZero())
	assert.False(t, s.Contains("p1"))
}

func TestFractionalPrices(t *testing.T) {
	s := NewStore()
	s.Toggle(models.Product{ID: "p1", PurchasePrice: decimal.RequireFromString("0.1")})
	s.Toggle(models.Product{ID: "p2", PurchasePrice: decimal.RequireFromString("0.2")})
	require.NoError(t, s.SetQuantity("p1", 3))

	assert.True(t, s.Total().Equal(decimal.RequireFromString("0.5")))
}

// Random toggle/setQuantity sequences: the total always matches the line items,
// membership stays unique, and an even number of toggles on a product leaves
// its membership where it started.
func TestRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	catalog := []models.Product{
		product("p1", "s1", 10),
		product("p2", "s1", 20),
		product("p3", "s1", 7),
		product("p4", "s1", 0),
	}

	for run := 0; run < 200; run++ {
		s := NewStore()
		toggles := map[string]int{}

		for step := 0; step < 40; step++ {
			p := catalog[rng.Intn(len(catalog))]
			if rng.Intn(3) == 0 {
				_ = s.SetQuantity(p.ID, rng.Intn(8)-2)
			} else {
				s.Toggle(p)
				toggles[p.ID]++
			}
			assertTotalMatches(t, s)

			seen := map[string]bool{}
			for _, item := range s.Items() {
				require.False(t, seen[item.ProductID], "duplicate %s", item.ProductID)
				seen[item.ProductID] = true
				require.GreaterOrEqual(t, item.Quantity, 1)
			}
		}

		for _, p := range catalog {
			assert.Equal(t, toggles[p.ID]%2 == 1, s.Contains(p.ID), "product %s", p.ID)
		}
	}
}
