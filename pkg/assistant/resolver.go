package assistant

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mostafakamar/hafla-store/pkg/domain"
)

// Fixed proposal defaults. Quantities and promotion figures are store
// policy, not user input; the user only confirms or cancels.
const (
	defaultRestockQuantity = 100
	defaultSupplierID      = "sup-house"
	defaultPromotionCode   = "HAFLA20"
	defaultPromotionPct    = 20
	defaultPromotionHours  = 48
	defaultPromotionUplift = 15
	notifyChannel          = "whatsapp"
)

// Keyword sets for the intent rules. English entries are matched on token
// boundaries, Arabic entries as substrings.
var (
	destructiveVerbs   = []string{"delete", "remove", "destroy", "wipe", "drop"}
	destructiveTargets = []string{"user", "users", "all", "database", "product", "products"}

	notifyWords    = []string{"notify", "message", "tell", "whatsapp", "أبلغ", "رسالة", "أخبر", "واتساب"}
	priceWords     = []string{"price", "cost", "discount", "sale", "سعر", "تكلفة", "خصم", "تخفيض"}
	actionWords    = []string{"change", "update", "set", "make", "apply", "غير", "عدل", "حدث", "اجعل", "طبق"}
	discountWords  = []string{"discount", "off", "خصم"}
	restockWords   = []string{"order", "restock", "buy", "po", "اطلب", "شراء", "تموين"}
	replaceWords   = []string{"replacement", "alternative", "بديل"}
	stockWords     = []string{"how many", "stock", "left", "مخزون", "كم"}
	promotionWords = []string{"promotion", "flash sale", "weekend", "عرض"}
	anaphoraWords  = []string{"it", "that", "this", "المنتج", "هذا"}

	idTokenRe = regexp.MustCompile(`(?i)\b(?:prd[-_]?[a-z0-9]+|\d{1,4})\b`)
	intRe     = regexp.MustCompile(`\d+`)
)

// Resolver turns free-text chat messages into bilingual replies and typed
// action proposals. Resolve is a pure function of its inputs: no I/O, no
// state; proposed mutations are applied elsewhere after user confirmation.
type Resolver struct {
	admins AdminDirectory
	rules  []intentRule
}

// intentRule pairs a keyword predicate with a handler. Rules are evaluated
// top-down; a handler may decline (ok=false) to fall through to later
// rules, which keeps the priority order explicit and testable.
type intentRule struct {
	name   string
	match  func(in *resolveInput) bool
	handle func(r *Resolver, in *resolveInput) (ChatResponse, bool)
}

type resolveInput struct {
	raw     string
	lower   string
	arabic  bool
	catalog []domain.Product
	ctx     AIContext

	// Resolved target product, if any, and how it was found.
	product  *domain.Product
	matchVia string

	// Message text with the matched product name removed, so numeric
	// extraction does not pick digits out of names like "Cub 2025".
	numericSource string
}

// NewResolver creates a resolver with the default admin directory.
func NewResolver() *Resolver {
	return NewResolverWithAdmins(DefaultAdminDirectory())
}

// NewResolverWithAdmins creates a resolver with a custom admin directory.
func NewResolverWithAdmins(admins AdminDirectory) *Resolver {
	r := &Resolver{admins: admins}
	r.rules = []intentRule{
		{name: "notify_admin", match: matchAny(notifyWords), handle: (*Resolver).handleNotify},
		{name: "price", match: matchAny(priceWords), handle: (*Resolver).handlePrice},
		{name: "restock", match: matchAny(restockWords), handle: (*Resolver).handleRestock},
		{name: "replacement", match: matchAny(replaceWords), handle: (*Resolver).handleReplacement},
		{name: "stock_query", match: matchAny(stockWords), handle: (*Resolver).handleStock},
		{name: "promotion", match: matchAny(promotionWords), handle: (*Resolver).handlePromotion},
		{name: "product_info", match: func(in *resolveInput) bool { return in.product != nil }, handle: (*Resolver).handleProductInfo},
	}
	return r
}

// Resolve parses a chat message against a catalog snapshot and the
// conversation context, and returns a bilingual reply with an optional
// action proposal. It never mutates its inputs.
func (r *Resolver) Resolve(message string, catalog []domain.Product, ctx AIContext) ChatResponse {
	in := &resolveInput{
		raw:           message,
		lower:         strings.ToLower(message),
		arabic:        containsArabic(message),
		catalog:       catalog,
		ctx:           ctx,
		numericSource: message,
	}

	// Safety lock: destructive phrasing short-circuits everything else.
	if resp, tripped := r.safetyLock(in); tripped {
		return resp
	}

	r.resolveProduct(in)

	// Staff may not touch pricing or promotions; read-only queries pass.
	if resp, blocked := r.staffGate(in); blocked {
		return resp
	}

	for _, rule := range r.rules {
		if !rule.match(in) {
			continue
		}
		if resp, ok := rule.handle(r, in); ok {
			return resp
		}
	}

	en, ar := say(phraseFallback)
	return ChatResponse{
		HumanEN:     en,
		HumanAR:     ar,
		Confidence:  0.4,
		Explanation: "no intent matched; asking for clarification",
	}
}

// safetyLock refuses destructive requests outright and proposes an admin
// notification as an audit trail.
func (r *Resolver) safetyLock(in *resolveInput) (ChatResponse, bool) {
	if !hasAny(in.lower, in.raw, destructiveVerbs) || !hasAny(in.lower, in.raw, destructiveTargets) {
		return ChatResponse{}, false
	}
	en, ar := say(phraseSafetyBlocked)
	preview := "Blocked a destructive request: " + truncate(in.raw, 120)
	return ChatResponse{
		HumanEN:    en,
		HumanAR:    ar,
		Confidence: 1.0,
		Payload: &ActionPayload{
			Type: ActionNotifyAdmin,
			NotifyAdmin: &NotifyAdminParams{
				TargetAdmin:    r.admins.Secondary.Name,
				Channel:        "system",
				TemplateID:     notifyTemplate(in.arabic),
				MessagePreview: preview,
			},
		},
		Explanation: "safety lock: destructive phrasing detected",
	}, true
}

// staffGate blocks pricing, discount and promotion requests from staff
// before intent classification. Read-only queries are unaffected.
func (r *Resolver) staffGate(in *resolveInput) (ChatResponse, bool) {
	if in.ctx.UserRole != RoleStaff {
		return ChatResponse{}, false
	}
	pricing := hasAny(in.lower, in.raw, priceWords) && hasAny(in.lower, in.raw, actionWords)
	if !pricing && !hasAny(in.lower, in.raw, discountWords) && !hasAny(in.lower, in.raw, promotionWords) {
		return ChatResponse{}, false
	}
	en, ar := say(phraseStaffPriceDenied)
	return ChatResponse{
		HumanEN:        en,
		HumanAR:        ar,
		Confidence:     1.0,
		RelatedProduct: in.product,
		Explanation:    "role gate: staff cannot change prices or promotions",
	}, true
}

// resolveProduct finds the target product: full-name substring first, then
// id token, then anaphora against the last-referenced product.
func (r *Resolver) resolveProduct(in *resolveInput) {
	for i := range in.catalog {
		p := &in.catalog[i]
		name := strings.ToLower(p.Name)
		if name != "" && strings.Contains(in.lower, name) {
			in.product = p
			in.matchVia = "name"
			in.numericSource = stripFirst(in.lower, name)
			return
		}
		if p.NameAr != "" && strings.Contains(in.raw, p.NameAr) {
			in.product = p
			in.matchVia = "name_ar"
			in.numericSource = stripFirst(in.raw, p.NameAr)
			return
		}
	}

	for _, token := range idTokenRe.FindAllString(in.raw, -1) {
		lowTok := strings.ToLower(token)
		for i := range in.catalog {
			id := strings.ToLower(in.catalog[i].ID)
			if id == lowTok || strings.Contains(id, lowTok) {
				in.product = &in.catalog[i]
				in.matchVia = "id"
				in.numericSource = stripFirst(in.lower, lowTok)
				return
			}
		}
	}

	if in.ctx.LastProductID != "" && hasAny(in.lower, in.raw, anaphoraWords) {
		for i := range in.catalog {
			if in.catalog[i].ID == in.ctx.LastProductID {
				in.product = &in.catalog[i]
				in.matchVia = "anaphora"
				return
			}
		}
	}
}

func (r *Resolver) handleNotify(in *resolveInput) (ChatResponse, bool) {
	admin := r.admins.Resolve(in.raw)

	var preview string
	if in.product != nil {
		preview = fmt.Sprintf("Stock alert: %s has %d units left.", in.product.Name, in.product.Stock)
	} else {
		preview = "A store update from the assistant."
	}

	en, ar := say(phraseNotifyAdmin, admin.Name)
	return ChatResponse{
		HumanEN:    en,
		HumanAR:    ar,
		Confidence: 0.95,
		Payload: &ActionPayload{
			Type: ActionNotifyAdmin,
			NotifyAdmin: &NotifyAdminParams{
				TargetAdmin:    admin.Name,
				Channel:        notifyChannel,
				TemplateID:     notifyTemplate(in.arabic),
				MessagePreview: preview,
			},
		},
		RelatedProduct: in.product,
		Explanation:    fmt.Sprintf("intent=notify_admin target=%s", admin.Name),
	}, true
}

func (r *Resolver) handlePrice(in *resolveInput) (ChatResponse, bool) {
	wantsChange := hasAny(in.lower, in.raw, actionWords)

	if wantsChange && in.product != nil {
		value, found := firstInt(in.numericSource)
		if !found {
			// An edit was requested but no number given; fall through so
			// the clarification fallback can ask again.
			return ChatResponse{}, false
		}

		// Heuristic: a value under 100 next to a discount cue is a
		// percentage, anything else is the literal new price. Ambiguous
		// for low-priced items; kept as-is deliberately.
		newPrice := float64(value)
		if value < 100 && hasDiscountCue(in) {
			newPrice = math.Round(in.product.Price * (1 - float64(value)/100))
		}

		en, ar := say(phrasePriceChange, in.product.Name, in.product.Price, newPrice)
		return ChatResponse{
			HumanEN:    en,
			HumanAR:    ar,
			Confidence: 0.9,
			Payload: &ActionPayload{
				Type: ActionChangePrice,
				ChangePrice: &ChangePriceParams{
					ProductID:   in.product.ID,
					ProductName: in.product.Name,
					OldPrice:    in.product.Price,
					NewPrice:    newPrice,
					Reason:      "requested via assistant chat",
				},
			},
			RelatedProduct: in.product,
			Explanation:    fmt.Sprintf("intent=change_price product=%s via=%s", in.product.ID, in.matchVia),
		}, true
	}

	if in.product != nil {
		en, ar := say(phrasePriceQuery, in.product.Name, in.product.Price, in.product.Stock)
		return ChatResponse{
			HumanEN:        en,
			HumanAR:        ar,
			Confidence:     1.0,
			RelatedProduct: in.product,
			Explanation:    fmt.Sprintf("intent=price_query product=%s via=%s", in.product.ID, in.matchVia),
		}, true
	}

	// Price keywords without a target product: let later rules have a go.
	return ChatResponse{}, false
}

func (r *Resolver) handleRestock(in *resolveInput) (ChatResponse, bool) {
	if in.product == nil {
		return ChatResponse{}, false
	}

	cost := in.product.CostPrice * defaultRestockQuantity
	en, ar := say(phraseRestock, defaultRestockQuantity, in.product.Name, cost)
	return ChatResponse{
		HumanEN:    en,
		HumanAR:    ar,
		Confidence: 0.85,
		Payload: &ActionPayload{
			Type: ActionCreatePO,
			CreatePO: &CreatePOParams{
				ProductID:     in.product.ID,
				ProductName:   in.product.Name,
				SupplierID:    defaultSupplierID,
				Quantity:      defaultRestockQuantity,
				EstimatedCost: cost,
			},
		},
		RelatedProduct: in.product,
		Explanation:    fmt.Sprintf("intent=create_po product=%s via=%s", in.product.ID, in.matchVia),
	}, true
}

func (r *Resolver) handleReplacement(in *resolveInput) (ChatResponse, bool) {
	if in.product == nil {
		return ChatResponse{}, false
	}

	var names []string
	for i := range in.catalog {
		p := &in.catalog[i]
		if p.ID == in.product.ID || p.Category != in.product.Category || p.Stock <= 0 {
			continue
		}
		names = append(names, p.Name)
		if len(names) == 2 {
			break
		}
	}

	var en, ar string
	if len(names) == 0 {
		en, ar = say(phraseReplacementNone)
	} else {
		en, ar = say(phraseReplacement, strings.Join(names, ", "))
	}
	return ChatResponse{
		HumanEN:        en,
		HumanAR:        ar,
		Confidence:     0.9,
		RelatedProduct: in.product,
		Explanation:    fmt.Sprintf("intent=replacement product=%s alternatives=%d", in.product.ID, len(names)),
	}, true
}

func (r *Resolver) handleStock(in *resolveInput) (ChatResponse, bool) {
	if in.product == nil {
		return ChatResponse{}, false
	}

	en, ar := say(phraseStockQuery, in.product.Stock, in.product.Name)
	return ChatResponse{
		HumanEN:        en,
		HumanAR:        ar,
		Confidence:     1.0,
		RelatedProduct: in.product,
		Explanation:    fmt.Sprintf("intent=stock_query product=%s via=%s", in.product.ID, in.matchVia),
	}, true
}

func (r *Resolver) handlePromotion(in *resolveInput) (ChatResponse, bool) {
	en, ar := say(phrasePromotion, defaultPromotionCode, defaultPromotionPct, defaultPromotionHours)
	return ChatResponse{
		HumanEN:    en,
		HumanAR:    ar,
		Confidence: 0.8,
		Payload: &ActionPayload{
			Type: ActionCreatePromotion,
			CreatePromotion: &CreatePromotionParams{
				Code:                  defaultPromotionCode,
				Category:              domain.CategoryBalloons,
				DiscountPercent:       defaultPromotionPct,
				DurationHours:         defaultPromotionHours,
				ExpectedUpliftPercent: defaultPromotionUplift,
			},
		},
		Explanation: "intent=create_promotion",
	}, true
}

// handleProductInfo answers messages that name a product but match no
// intent keywords ("where is X?") with a price/stock summary.
func (r *Resolver) handleProductInfo(in *resolveInput) (ChatResponse, bool) {
	en, ar := say(phrasePriceQuery, in.product.Name, in.product.Price, in.product.Stock)
	return ChatResponse{
		HumanEN:        en,
		HumanAR:        ar,
		Confidence:     0.9,
		RelatedProduct: in.product,
		Explanation:    fmt.Sprintf("intent=product_info product=%s via=%s", in.product.ID, in.matchVia),
	}, true
}

func matchAny(words []string) func(in *resolveInput) bool {
	return func(in *resolveInput) bool {
		return hasAny(in.lower, in.raw, words)
	}
}

func hasDiscountCue(in *resolveInput) bool {
	return hasAny(in.lower, in.raw, discountWords) || strings.Contains(in.raw, "%")
}

// hasAny reports whether any keyword occurs in the message. ASCII keywords
// must match on token boundaries (so "po" does not fire inside
// "promotion"); Arabic keywords match as substrings since the messages are
// not tokenised.
func hasAny(lower, raw string, words []string) bool {
	for _, w := range words {
		if isASCII(w) {
			if containsToken(lower, w) {
				return true
			}
		} else if strings.Contains(raw, w) {
			return true
		}
	}
	return false
}

func containsToken(s, token string) bool {
	for start := 0; ; {
		i := strings.Index(s[start:], token)
		if i < 0 {
			return false
		}
		i += start
		before := i == 0 || !isWordByte(s[i-1])
		endIdx := i + len(token)
		after := endIdx == len(s) || !isWordByte(s[endIdx])
		if before && after {
			return true
		}
		start = i + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// containsArabic reports whether the message has any character in the
// Arabic Unicode block; it selects which reply field the caller displays.
func containsArabic(s string) bool {
	for _, r := range s {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}

func firstInt(s string) (int, bool) {
	m := intRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return v, true
}

func stripFirst(s, sub string) string {
	if i := strings.Index(s, sub); i >= 0 {
		return s[:i] + s[i+len(sub):]
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
