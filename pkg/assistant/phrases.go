package assistant

import "fmt"

// phraseKey identifies a response kind in the bilingual phrase table.
type phraseKey int

const (
	phraseSafetyBlocked phraseKey = iota
	phraseStaffPriceDenied
	phraseNotifyAdmin
	phrasePriceChange
	phrasePriceQuery
	phraseRestock
	phraseReplacement
	phraseReplacementNone
	phraseStockQuery
	phrasePromotion
	phraseFallback
)

// phrase holds the English and Arabic renderings of one response kind.
// Format verbs must appear in the same order in both languages.
type phrase struct {
	EN string
	AR string
}

var phrases = map[phraseKey]phrase{
	phraseSafetyBlocked: {
		EN: "I can't help with destructive operations. This request has been reported to the store admin.",
		AR: "لا يمكنني المساعدة في العمليات التدميرية. تم إبلاغ مدير المتجر بهذا الطلب.",
	},
	phraseStaffPriceDenied: {
		EN: "Staff accounts can't change prices or run promotions. I can notify an admin for you instead.",
		AR: "حسابات الموظفين لا يمكنها تغيير الأسعار أو إطلاق العروض. يمكنني إبلاغ المدير بدلاً من ذلك.",
	},
	phraseNotifyAdmin: {
		EN: "Ready to send a message to %s. Confirm to send it.",
		AR: "جاهز لإرسال رسالة إلى %s. قم بالتأكيد للإرسال.",
	},
	phrasePriceChange: {
		EN: "Change the price of %s from %.0f to %.0f EGP? Confirm to apply.",
		AR: "تغيير سعر %s من %.0f إلى %.0f جنيه؟ قم بالتأكيد للتطبيق.",
	},
	phrasePriceQuery: {
		EN: "%s sells for %.0f EGP and we have %d in stock.",
		AR: "%s يباع بسعر %.0f جنيه ولدينا %d في المخزون.",
	},
	phraseRestock: {
		EN: "Create a purchase order for %d units of %s (estimated cost %.0f EGP)? Confirm to log it.",
		AR: "إنشاء أمر شراء لعدد %d من %s (التكلفة التقديرية %.0f جنيه)؟ قم بالتأكيد للتسجيل.",
	},
	phraseReplacement: {
		EN: "You could offer these instead: %s.",
		AR: "يمكنك عرض هذه البدائل: %s.",
	},
	phraseReplacementNone: {
		EN: "I couldn't find any in-stock alternatives in the same category.",
		AR: "لم أجد أي بدائل متوفرة في نفس الفئة.",
	},
	phraseStockQuery: {
		EN: "We have %d units of %s left.",
		AR: "لدينا %d وحدة متبقية من %s.",
	},
	phrasePromotion: {
		EN: "Launch promotion %s: %d%% off for %d hours? Confirm to schedule it.",
		AR: "إطلاق العرض %s: خصم %d%% لمدة %d ساعة؟ قم بالتأكيد للجدولة.",
	},
	phraseFallback: {
		EN: "I'm not sure what you need. Try naming a product, or ask about stock, prices or restocking.",
		AR: "لست متأكداً مما تحتاجه. جرب ذكر اسم منتج، أو اسأل عن المخزون أو الأسعار أو التموين.",
	},
}

// say renders a phrase in both languages with the same arguments.
func say(key phraseKey, args ...interface{}) (en, ar string) {
	p := phrases[key]
	if len(args) == 0 {
		return p.EN, p.AR
	}
	return fmt.Sprintf(p.EN, args...), fmt.Sprintf(p.AR, args...)
}

// Notification template ids, selected by detected language.
const (
	templateNotifyEN = "tmpl-notify-en"
	templateNotifyAR = "tmpl-notify-ar"
)

func notifyTemplate(arabic bool) string {
	if arabic {
		return templateNotifyAR
	}
	return templateNotifyEN
}
