package classifier

// The two instruction templates sent to the LLM. The classification prompt
// asks for a bare category digit; the extraction prompt asks for the
// offending words, one per line. Both target Saudi-dialect Arabic text but
// work on mixed-language messages in practice.
const categoryPrompt = `أنت مصنف محتوى للنصوص باللهجة السعودية. صنّف النص وفقًا للفئات التالية، مع إعطاء رقم التصنيف فقط (دون أي شرح إضافي):
0. نص سليم: إذا كان النص لا يحتوي على أي محتوى غير لائق.
1. ألفاظ غير لائقة: إذا كان النص يضم شتائم أو إهانات أو ألفاظ مسيئة.
2. نص جنسي: إذا كان النص يضم وصفًا جنسيًا صريحًا أو تلميحات جنسية واضحة.
3. مخدرات: إذا كان النص يتحدث عن المخدرات بأي شكل (ترويج، تعاطٍ، اتجار، إلخ).
انتبه للألفاظ المحلية العامية، وحافظ على دقة التصنيف بإعطاء رقم واحد فقط (0 أو 1 أو 2 أو 3).

أجب برقم واحد فقط.`

const tokensPrompt = `حدد الكلمات غير اللائقة في النص التالي فقط، دون أي شرح إضافي.
أجب بالكلمات فقط، كل كلمة في سطر جديد.`

// Tables holds the keyword fallback lists used when the model's reply has no
// usable category digit. Lists are checked in declaration order, first match
// wins. Passed in at construction so tests can substitute alternates.
type Tables struct {
	SafeKeywords          []string
	InappropriateKeywords []string
	SexualKeywords        []string
	DrugKeywords          []string
}

// DefaultTables returns the built-in bilingual keyword lists.
func DefaultTables() Tables {
	return Tables{
		SafeKeywords:          []string{"سليم", "آمن", "جيد", "مقبول", "safe", "clean", "acceptable"},
		InappropriateKeywords: []string{"غير لائق", "شتائم", "إهانة", "inappropriate", "profanity", "insult"},
		SexualKeywords:        []string{"جنسي", "جنسية", "sexual"},
		DrugKeywords:          []string{"مخدرات", "مخدر", "drug"},
	}
}
