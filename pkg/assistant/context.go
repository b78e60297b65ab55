package assistant

// DeriveContext computes the per-turn context for Resolve by scanning the
// conversation history, newest first, for the last referenced product.
// This runs in the caller, once per turn, so the resolver itself stays a
// pure function of explicit inputs.
func DeriveContext(messages []ChatMessage, role Role) AIContext {
	ctx := AIContext{UserRole: role}
	for i := len(messages) - 1; i >= 0; i-- {
		if id := referencedProductID(messages[i]); id != "" {
			ctx.LastProductID = id
			return ctx
		}
	}
	return ctx
}

// referencedProductID extracts the product a message talks about, either
// through its related-product annotation or through a payload variant that
// carries a product id.
func referencedProductID(m ChatMessage) string {
	if m.RelatedProduct != nil {
		return m.RelatedProduct.ID
	}
	if m.Payload == nil {
		return ""
	}
	switch m.Payload.Type {
	case ActionChangePrice:
		if m.Payload.ChangePrice != nil {
			return m.Payload.ChangePrice.ProductID
		}
	case ActionCreatePO:
		if m.Payload.CreatePO != nil {
			return m.Payload.CreatePO.ProductID
		}
	case ActionNotifyAdmin, ActionCreatePromotion:
		// These variants do not reference a product.
	}
	return ""
}
