package hotelextractor

import (
	"strings"
	"unicode"
)

// Structurally-scraped text is full of strings that look like content but
// are not: currency names next to prices, payment providers from the footer,
// weekday names from the calendar widget, marketing jargon. Every amenity
// and attraction candidate passes through this single gate. The lexicon is
// one table so it can be extended and tested apart from extraction logic.
var noiseLexicon = []string{
	// currencies
	"euro", "dollar", "pound sterling", "yen", "franc", "krona", "zloty",
	"rupee", "peso", "dirham", "currency",
	// languages
	"english", "french", "spanish", "german", "italian", "portuguese",
	"dutch", "russian", "chinese", "japanese", "arabic",
	// weekdays
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	"sunday",
	// months
	"january", "february", "march", "april", "june", "july", "august",
	"september", "october", "november", "december",
	// payment providers
	"paypal", "mastercard", "visa", "american express", "amex", "maestro",
	"diners club", "unionpay", "jcb",
	// property types
	"hotel", "hostel", "apartment", "resort", "villa", "guesthouse",
	"guest house", "bed and breakfast",
	// transport modes
	"taxi", "metro", "bus stop", "train station", "tram", "subway",
	// booking/price/policy jargon
	"per night", "price", "prices", "booking", "book now", "reserve",
	"check-in", "check-out", "checkin", "checkout", "cancellation",
	"deposit", "prepayment", "discount", "genius", "deal", "taxes",
	"vat", "city tax", "availability", "sign in", "register", "faq",
	"overview", "skip to", "cookie", "subscribe",
	// html fragments
	"<", ">", "&nbsp;", "&amp;", "http://", "https://", "nbsp",
}

const (
	minCandidateLen      = 3
	maxCandidateLen      = 80
	maxAttractionWords   = 6
	disallowedCandidates = `<>"'`
)

// isAdmissibleAmenity reports whether a scraped string is a plausible
// amenity name rather than incidental page text.
func isAdmissibleAmenity(s string) bool {
	return admissible(s, 0)
}

// isAdmissibleAttraction is the same gate with the additional word bound for
// attraction names.
func isAdmissibleAttraction(s string) bool {
	return admissible(s, maxAttractionWords)
}

func admissible(s string, maxWords int) bool {
	s = strings.TrimSpace(s)
	if len(s) <= minCandidateLen || len(s) > maxCandidateLen {
		return false
	}

	first := []rune(s)[0]
	if !unicode.IsUpper(first) || !unicode.IsLetter(first) {
		return false
	}

	if strings.ContainsAny(s, disallowedCandidates) {
		return false
	}

	if maxWords > 0 && len(strings.Fields(s)) > maxWords {
		return false
	}

	lower := strings.ToLower(s)
	for _, token := range noiseLexicon {
		if strings.Contains(lower, token) {
			return false
		}
	}
	return true
}
