package assistant

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mostafakamar/hafla-store/pkg/domain"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "prd-1001", Name: "Cub 2025 (Blue Party Cups)", NameAr: "أكواب الحفلة الزرقاء", Price: 200, CostPrice: 120, Stock: 100, Category: domain.CategoryTableware, Active: true},
		{ID: "prd-1002", Name: "Golden Balloon Pack", NameAr: "حزمة بالونات ذهبية", Price: 150, CostPrice: 80, Stock: 45, Category: domain.CategoryBalloons, Active: true},
		{ID: "prd-1003", Name: "Helium Balloon Jumbo", NameAr: "بالون هيليوم كبير", Price: 320, CostPrice: 190, Stock: 12, Category: domain.CategoryBalloons, Active: true},
		{ID: "prd-1005", Name: "LED String Lights 10m", NameAr: "حبل إضاءة ليد ١٠ متر", Price: 450, CostPrice: 260, Stock: 25, Category: domain.CategoryLighting, Active: true},
		{ID: "prd-1006", Name: "Paper Plates Rainbow", NameAr: "أطباق ورقية ملونة", Price: 120, CostPrice: 55, Stock: 80, Category: domain.CategoryTableware, Active: true},
		{ID: "prd-1007", Name: "Pharaoh Costume Kids", NameAr: "زي فرعوني للأطفال", Price: 600, CostPrice: 350, Stock: 8, Category: domain.CategoryCostumes, Active: true},
	}
}

func adminCtx() AIContext {
	return AIContext{UserRole: RoleAdmin}
}

func TestSafetyLockBlocksDestructiveRequests(t *testing.T) {
	r := NewResolver()
	catalog := testCatalog()

	for _, msg := range []string{
		"delete all users",
		"please DROP the database",
		"wipe all products now",
	} {
		resp := r.Resolve(msg, catalog, adminCtx())

		assert.Equal(t, 1.0, resp.Confidence, "message: %s", msg)
		require.NotNil(t, resp.Payload, "message: %s", msg)
		assert.Equal(t, ActionNotifyAdmin, resp.Payload.Type)
		require.NotNil(t, resp.Payload.NotifyAdmin)
		assert.Equal(t, "Walid", resp.Payload.NotifyAdmin.TargetAdmin)
		assert.Equal(t, "system", resp.Payload.NotifyAdmin.Channel)
		assert.Contains(t, resp.Payload.NotifyAdmin.MessagePreview, "Blocked a destructive request")
	}
}

func TestSafetyLockDominatesOtherIntents(t *testing.T) {
	r := NewResolver()

	// Destructive phrasing plus a price intent: the lock must win.
	resp := r.Resolve("delete the product and change the price of Golden Balloon Pack to 90", testCatalog(), adminCtx())

	require.NotNil(t, resp.Payload)
	assert.Equal(t, ActionNotifyAdmin, resp.Payload.Type)
	assert.Equal(t, 1.0, resp.Confidence)
}

func TestSafetyLockDoesNotFireOnBenignWords(t *testing.T) {
	r := NewResolver()

	// "all" appears inside "balloon" only as a substring, never as a token.
	resp := r.Resolve("What is the price of Golden Balloon Pack?", testCatalog(), adminCtx())

	assert.Nil(t, resp.Payload)
	require.NotNil(t, resp.RelatedProduct)
	assert.Equal(t, "prd-1002", resp.RelatedProduct.ID)
}

func TestStaffCannotChangePrices(t *testing.T) {
	r := NewResolver()
	ctx := AIContext{UserRole: RoleStaff}

	resp := r.Resolve("change price of Cub 2025 to 50", testCatalog(), ctx)

	assert.Nil(t, resp.Payload)
	assert.Equal(t, 1.0, resp.Confidence)
	assert.Contains(t, resp.HumanEN, "Staff accounts")
}

func TestStaffCannotLaunchPromotions(t *testing.T) {
	r := NewResolver()
	ctx := AIContext{UserRole: RoleStaff}

	resp := r.Resolve("run a weekend promotion", testCatalog(), ctx)

	assert.Nil(t, resp.Payload)
	assert.Contains(t, resp.HumanEN, "Staff accounts")
}

func TestStaffReadOnlyQueriesPass(t *testing.T) {
	r := NewResolver()
	ctx := AIContext{UserRole: RoleStaff}

	resp := r.Resolve("how many Golden Balloon Pack left?", testCatalog(), ctx)

	assert.Nil(t, resp.Payload)
	assert.Contains(t, resp.HumanEN, "45")
	require.NotNil(t, resp.RelatedProduct)
	assert.Equal(t, "prd-1002", resp.RelatedProduct.ID)
}

func TestStaffNeverProposesPriceOrPromotionActions(t *testing.T) {
	r := NewResolver()
	ctx := AIContext{UserRole: RoleStaff}

	for _, msg := range []string{
		"change the price of Golden Balloon Pack to 90",
		"apply a 20% discount to Cub 2025 (Blue Party Cups)",
		"launch a flash sale",
		"خصم ٢٠٪ على المنتج",
	} {
		resp := r.Resolve(msg, testCatalog(), ctx)
		if resp.Payload != nil {
			assert.NotEqual(t, ActionChangePrice, resp.Payload.Type, "message: %s", msg)
			assert.NotEqual(t, ActionCreatePromotion, resp.Payload.Type, "message: %s", msg)
		}
	}
}

func TestPriceChangeLiteralValue(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("Change the price of Cub 2025 (Blue Party Cups) to 150", testCatalog(), adminCtx())

	assert.Equal(t, 0.9, resp.Confidence)
	require.NotNil(t, resp.Payload)
	require.NotNil(t, resp.Payload.ChangePrice)
	assert.Equal(t, ActionChangePrice, resp.Payload.Type)
	assert.Equal(t, "prd-1001", resp.Payload.ChangePrice.ProductID)
	assert.Equal(t, 200.0, resp.Payload.ChangePrice.OldPrice)
	assert.Equal(t, 150.0, resp.Payload.ChangePrice.NewPrice)
}

func TestPriceChangePercentageDiscount(t *testing.T) {
	r := NewResolver()

	// 20 with a discount cue reads as a percentage: 200 -> 160.
	resp := r.Resolve("Apply a 20% discount to Cub 2025 (Blue Party Cups)", testCatalog(), adminCtx())

	require.NotNil(t, resp.Payload)
	require.NotNil(t, resp.Payload.ChangePrice)
	assert.Equal(t, 160.0, resp.Payload.ChangePrice.NewPrice)
}

func TestPriceChangeIgnoresDigitsInProductName(t *testing.T) {
	r := NewResolver()

	// "2025" and "10" inside product names must not be mistaken for the
	// requested price.
	resp := r.Resolve("set the price of LED String Lights 10m to 400", testCatalog(), adminCtx())

	require.NotNil(t, resp.Payload)
	require.NotNil(t, resp.Payload.ChangePrice)
	assert.Equal(t, "prd-1005", resp.Payload.ChangePrice.ProductID)
	assert.Equal(t, 400.0, resp.Payload.ChangePrice.NewPrice)
}

func TestPriceChangeWithoutValueFallsThrough(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("change the price of Golden Balloon Pack", testCatalog(), adminCtx())

	assert.Nil(t, resp.Payload)
	assert.Equal(t, 0.4, resp.Confidence)
}

func TestPriceQuery(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("What is the price of Paper Plates Rainbow?", testCatalog(), adminCtx())

	assert.Nil(t, resp.Payload)
	assert.Equal(t, 1.0, resp.Confidence)
	assert.Contains(t, resp.HumanEN, "120")
	assert.Contains(t, resp.HumanEN, "80")
}

func TestNotifyAdminIntent(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("Send a whatsapp to Walid about low stock of Golden Balloon Pack", testCatalog(), adminCtx())

	assert.Equal(t, 0.95, resp.Confidence)
	require.NotNil(t, resp.Payload)
	assert.Equal(t, ActionNotifyAdmin, resp.Payload.Type)
	require.NotNil(t, resp.Payload.NotifyAdmin)
	assert.Equal(t, "Walid", resp.Payload.NotifyAdmin.TargetAdmin)
	assert.Equal(t, "whatsapp", resp.Payload.NotifyAdmin.Channel)
	assert.Equal(t, "tmpl-notify-en", resp.Payload.NotifyAdmin.TemplateID)
	assert.Contains(t, resp.Payload.NotifyAdmin.MessagePreview, "45 units left")
}

func TestNotifyAdminDefaultsToSecondary(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("notify the manager about the delivery", testCatalog(), adminCtx())

	require.NotNil(t, resp.Payload)
	require.NotNil(t, resp.Payload.NotifyAdmin)
	assert.Equal(t, "Walid", resp.Payload.NotifyAdmin.TargetAdmin)
}

func TestNotifyAdminResolvesPrimaryByName(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("tell Karim we are out of balloons", testCatalog(), adminCtx())

	require.NotNil(t, resp.Payload)
	require.NotNil(t, resp.Payload.NotifyAdmin)
	assert.Equal(t, "Karim", resp.Payload.NotifyAdmin.TargetAdmin)
}

func TestNotifyIntentShadowsStockQuery(t *testing.T) {
	r := NewResolver()

	// "tell" puts this in the notify rule even though "stock" also matches.
	resp := r.Resolve("tell Walid about the stock of Golden Balloon Pack", testCatalog(), adminCtx())

	require.NotNil(t, resp.Payload)
	assert.Equal(t, ActionNotifyAdmin, resp.Payload.Type)
}

func TestArabicNotifyUsesArabicTemplate(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("أبلغ وليد عن نقص المخزون", testCatalog(), adminCtx())

	require.NotNil(t, resp.Payload)
	require.NotNil(t, resp.Payload.NotifyAdmin)
	assert.Equal(t, "Walid", resp.Payload.NotifyAdmin.TargetAdmin)
	assert.Equal(t, "tmpl-notify-ar", resp.Payload.NotifyAdmin.TemplateID)
}

func TestRestockIntent(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("Order a restock of Pharaoh Costume Kids", testCatalog(), adminCtx())

	assert.Equal(t, 0.85, resp.Confidence)
	require.NotNil(t, resp.Payload)
	assert.Equal(t, ActionCreatePO, resp.Payload.Type)
	require.NotNil(t, resp.Payload.CreatePO)
	assert.Equal(t, "prd-1007", resp.Payload.CreatePO.ProductID)
	assert.Equal(t, "sup-house", resp.Payload.CreatePO.SupplierID)
	assert.Equal(t, 100, resp.Payload.CreatePO.Quantity)
	assert.Equal(t, 35000.0, resp.Payload.CreatePO.EstimatedCost)
}

func TestRestockWithoutProductFallsThrough(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("order a restock", testCatalog(), adminCtx())

	assert.Nil(t, resp.Payload)
	assert.Equal(t, 0.4, resp.Confidence)
}

func TestReplacementSuggestion(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("Suggest a replacement for Helium Balloon Jumbo", testCatalog(), adminCtx())

	assert.Nil(t, resp.Payload)
	assert.Equal(t, 0.9, resp.Confidence)
	assert.Contains(t, resp.HumanEN, "Golden Balloon Pack")
	assert.NotContains(t, resp.HumanEN, "Helium Balloon Jumbo,")
}

func TestReplacementNoneFound(t *testing.T) {
	r := NewResolver()

	// The only costume in the catalog has no same-category alternative.
	resp := r.Resolve("Is there an alternative for Pharaoh Costume Kids?", testCatalog(), adminCtx())

	assert.Nil(t, resp.Payload)
	assert.Contains(t, resp.HumanEN, "couldn't find")
}

func TestReplacementSkipsOutOfStock(t *testing.T) {
	r := NewResolver()
	catalog := testCatalog()
	for i := range catalog {
		if catalog[i].ID == "prd-1002" {
			catalog[i].Stock = 0
		}
	}

	resp := r.Resolve("Suggest a replacement for Helium Balloon Jumbo", catalog, adminCtx())

	assert.Contains(t, resp.HumanEN, "couldn't find")
}

func TestStockQueryByName(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("how many Paper Plates Rainbow do we have in stock?", testCatalog(), adminCtx())

	assert.Nil(t, resp.Payload)
	assert.Equal(t, 1.0, resp.Confidence)
	assert.Contains(t, resp.HumanEN, "80")
}

func TestStockQueryByNumericToken(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("how many do we have of 1006?", testCatalog(), adminCtx())

	require.NotNil(t, resp.RelatedProduct)
	assert.Equal(t, "prd-1006", resp.RelatedProduct.ID)
	assert.Contains(t, resp.HumanEN, "80")
}

func TestStockQueryByProductID(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("what is the price of prd-1005?", testCatalog(), adminCtx())

	require.NotNil(t, resp.RelatedProduct)
	assert.Equal(t, "prd-1005", resp.RelatedProduct.ID)
	assert.Contains(t, resp.HumanEN, "450")
}

func TestAnaphoraUsesLastProduct(t *testing.T) {
	r := NewResolver()
	ctx := AIContext{UserRole: RoleAdmin, LastProductID: "prd-1003"}

	resp := r.Resolve("how many do we have left of it?", testCatalog(), ctx)

	require.NotNil(t, resp.RelatedProduct)
	assert.Equal(t, "prd-1003", resp.RelatedProduct.ID)
	assert.Contains(t, resp.HumanEN, "12")
}

func TestAnaphoraWithoutContextFallsBack(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("how many do we have left of it?", testCatalog(), adminCtx())

	assert.Nil(t, resp.RelatedProduct)
	assert.Equal(t, 0.4, resp.Confidence)
}

func TestArabicStockQuery(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("كم المخزون من حزمة بالونات ذهبية؟", testCatalog(), adminCtx())

	require.NotNil(t, resp.RelatedProduct)
	assert.Equal(t, "prd-1002", resp.RelatedProduct.ID)
	assert.Contains(t, resp.HumanAR, "45")
}

func TestPromotionIntent(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("Run a weekend promotion", testCatalog(), adminCtx())

	assert.Equal(t, 0.8, resp.Confidence)
	require.NotNil(t, resp.Payload)
	assert.Equal(t, ActionCreatePromotion, resp.Payload.Type)
	require.NotNil(t, resp.Payload.CreatePromotion)
	assert.Equal(t, "HAFLA20", resp.Payload.CreatePromotion.Code)
	assert.Equal(t, 20, resp.Payload.CreatePromotion.DiscountPercent)
	assert.Equal(t, 48, resp.Payload.CreatePromotion.DurationHours)
	assert.Equal(t, 15, resp.Payload.CreatePromotion.ExpectedUpliftPercent)
}

func TestProductInfoWithoutIntentKeywords(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("Where is the Cub 2025 (Blue Party Cups)?", testCatalog(), adminCtx())

	assert.Nil(t, resp.Payload)
	assert.Contains(t, resp.HumanEN, "100")
	require.NotNil(t, resp.RelatedProduct)
	assert.Equal(t, "prd-1001", resp.RelatedProduct.ID)
}

func TestVerbatimNameResolvesProduct(t *testing.T) {
	r := NewResolver()
	catalog := testCatalog()

	for _, p := range catalog {
		resp := r.Resolve("I am looking for "+p.Name, catalog, adminCtx())
		require.NotNil(t, resp.RelatedProduct, "product: %s", p.Name)
		assert.Equal(t, p.ID, resp.RelatedProduct.ID, "product: %s", p.Name)
	}
}

func TestFallbackOnUnknownMessage(t *testing.T) {
	r := NewResolver()

	resp := r.Resolve("hello there", testCatalog(), adminCtx())

	assert.Nil(t, resp.Payload)
	assert.Equal(t, 0.4, resp.Confidence)
	assert.NotEmpty(t, resp.HumanEN)
	assert.NotEmpty(t, resp.HumanAR)
}

func TestResolveIsDeterministicAndPure(t *testing.T) {
	r := NewResolver()
	catalog := testCatalog()
	snapshot := testCatalog()

	first := r.Resolve("Apply a 20% discount to Cub 2025 (Blue Party Cups)", catalog, adminCtx())
	second := r.Resolve("Apply a 20% discount to Cub 2025 (Blue Party Cups)", catalog, adminCtx())

	assert.Equal(t, first.HumanEN, second.HumanEN)
	assert.Equal(t, first.Confidence, second.Confidence)
	require.NotNil(t, second.Payload)
	assert.Equal(t, first.Payload.ChangePrice.NewPrice, second.Payload.ChangePrice.NewPrice)

	// The catalog snapshot is never mutated.
	assert.Equal(t, snapshot, catalog)
}

func TestResponsesAreBilingual(t *testing.T) {
	r := NewResolver()
	catalog := testCatalog()

	for _, msg := range []string{
		"delete all users",
		"What is the price of Paper Plates Rainbow?",
		"Order a restock of Pharaoh Costume Kids",
		"Run a weekend promotion",
		"hello there",
	} {
		resp := r.Resolve(msg, catalog, adminCtx())
		assert.NotEmpty(t, resp.HumanEN, "message: %s", msg)
		assert.NotEmpty(t, resp.HumanAR, "message: %s", msg)
		assert.True(t, containsArabic(resp.HumanAR), "message: %s", msg)
	}
}

func TestPhraseTableIsComplete(t *testing.T) {
	for key := phraseSafetyBlocked; key <= phraseFallback; key++ {
		p, ok := phrases[key]
		require.True(t, ok, "missing phrase %d", key)
		assert.NotEmpty(t, p.EN)
		assert.NotEmpty(t, p.AR)
		assert.Equal(t,
			strings.Count(p.EN, "%")-2*strings.Count(p.EN, "%%"),
			strings.Count(p.AR, "%")-2*strings.Count(p.AR, "%%"),
			"format verb count mismatch for phrase %d", key)
	}
}

func TestTruncateLongPreview(t *testing.T) {
	r := NewResolver()
	long := "delete all users " + strings.Repeat("x", 300)

	resp := r.Resolve(long, testCatalog(), adminCtx())

	require.NotNil(t, resp.Payload)
	require.NotNil(t, resp.Payload.NotifyAdmin)
	preview := resp.Payload.NotifyAdmin.MessagePreview
	assert.LessOrEqual(t, len(preview), len("Blocked a destructive request: ")+120+len("…"))
}

func ExampleResolver_Resolve() {
	r := NewResolver()
	catalog := []domain.Product{
		{ID: "prd-1", Name: "Golden Balloon Pack", Price: 150, Stock: 45, Category: domain.CategoryBalloons},
	}

	resp := r.Resolve("how many Golden Balloon Pack left?", catalog, AIContext{UserRole: RoleAdmin})
	fmt.Println(resp.HumanEN)
	// Output: We have 45 units of Golden Balloon Pack left.
}
