// Package fieldvalue turns a data record into the text printed for each
// template field: field-key catalogue, writing direction of date fields and
// localised display values.
package fieldvalue

import "strings"

// DateCategory groups date fields sharing one formatting policy.
type DateCategory string

const (
	DateBirth       DateCategory = "birth"
	DateDefense     DateCategory = "defense"
	DateCertificate DateCategory = "certificate"
)

type dateKey struct {
	category DateCategory
	source   string // record attribute holding the date
}

var dateKeys = map[string]dateKey{
	"birth_date":       {DateBirth, "date_of_birth"},
	"defense_date":     {DateDefense, "defense_date"},
	"certificate_date": {DateCertificate, "certificate_date"},
}

const (
	StaticTextKey = "static_text"
	staticPrefix  = "static_"
	customPrefix  = "custom_"
	mentionKey    = "mention"
)

// Language suffix of a bilingual key, "" when the key has none.
func languageOf(key string) string {
	switch {
	case strings.HasSuffix(key, "_ar"):
		return "ar"
	case strings.HasSuffix(key, "_fr"):
		return "fr"
	}
	return ""
}

func baseKey(key string) string {
	if lang := languageOf(key); lang != "" {
		return strings.TrimSuffix(key, "_"+lang)
	}
	return key
}

// IsStatic reports keys rendering a stored literal instead of record data.
func IsStatic(key string) bool {
	return strings.HasPrefix(key, staticPrefix)
}

// IsDate reports keys rendering one of the formatted record dates.
func IsDate(key string) bool {
	_, ok := dateKeys[baseKey(key)]
	return ok
}

// IsMention reports keys rendering the honour grade.
func IsMention(key string) bool {
	return baseKey(key) == mentionKey
}

// KeyInfo describes a field key offered to template designers.
type KeyInfo struct {
	Key    string `json:"key"`
	NameAr string `json:"name_ar"`
	NameFr string `json:"name_fr"`
	RTL    bool   `json:"is_rtl"`
}

// Catalogue lists the data keys known to the renderer.
var Catalogue = []KeyInfo{
	{"full_name_ar", "الاسم واللقب", "Nom et prénom (ar)", true},
	{"full_name_fr", "الاسم واللقب بالفرنسية", "Nom et prénom", false},
	{"birth_date_ar", "تاريخ الميلاد", "Date de naissance (ar)", true},
	{"birth_date_fr", "تاريخ الميلاد بالفرنسية", "Date de naissance", false},
	{"birthplace_ar", "مكان الميلاد", "Lieu de naissance (ar)", true},
	{"birthplace_fr", "مكان الميلاد بالفرنسية", "Lieu de naissance", false},
	{"university_ar", "الجامعة", "Université (ar)", true},
	{"university_fr", "الجامعة بالفرنسية", "Université", false},
	{"faculty_ar", "الكلية", "Faculté (ar)", true},
	{"faculty_fr", "الكلية بالفرنسية", "Faculté", false},
	{"field_ar", "الميدان", "Domaine (ar)", true},
	{"field_fr", "الميدان بالفرنسية", "Domaine", false},
	{"branch_ar", "الشعبة", "Filière (ar)", true},
	{"branch_fr", "الشعبة بالفرنسية", "Filière", false},
	{"specialty_ar", "التخصص", "Spécialité (ar)", true},
	{"specialty_fr", "التخصص بالفرنسية", "Spécialité", false},
	{"thesis_title_ar", "عنوان الأطروحة", "Intitulé de la thèse (ar)", true},
	{"thesis_title_fr", "عنوان الأطروحة بالفرنسية", "Intitulé de la thèse", false},
	{"supervisor_ar", "المشرف", "Directeur de thèse (ar)", true},
	{"supervisor_fr", "المشرف بالفرنسية", "Directeur de thèse", false},
	{"jury_president_ar", "رئيس اللجنة", "Président du jury (ar)", true},
	{"jury_president_fr", "رئيس اللجنة بالفرنسية", "Président du jury", false},
	{"jury_members_ar", "أعضاء اللجنة", "Membres du jury (ar)", true},
	{"jury_members_fr", "أعضاء اللجنة بالفرنسية", "Membres du jury", false},
	{"defense_date_ar", "تاريخ المناقشة", "Date de soutenance (ar)", true},
	{"defense_date_fr", "تاريخ المناقشة بالفرنسية", "Date de soutenance", false},
	{"mention_ar", "التقدير", "Mention (ar)", true},
	{"mention_fr", "التقدير بالفرنسية", "Mention", false},
	{"certificate_number", "رقم الشهادة", "Numéro du diplôme", false},
	{"certificate_date_ar", "تاريخ الشهادة", "Date du diplôme (ar)", true},
	{"certificate_date_fr", "تاريخ الشهادة بالفرنسية", "Date du diplôme", false},
	{"student_number", "رقم التسجيل", "Matricule", false},
}

// LookupKey returns the catalogue entry for key.
func LookupKey(key string) (KeyInfo, bool) {
	for _, k := range Catalogue {
		if k.Key == key {
			return k, true
		}
	}
	return KeyInfo{}, false
}
