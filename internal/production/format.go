package production

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/units"
)

// printer formats numbers in messages. message.Printer is safe for concurrent use.
var printer = message.NewPrinter(language.English)

// displayRound rounds v for presentation in the given unit.
func displayRound(v float64, unit domain.DisplayUnit) float64 {
	places := DisplayPrecisionBulk
	if unit == domain.UnitPieces {
		places = DisplayPrecisionPieces
		if v != float64(int64(v)) {
			places = DisplayPrecisionBulk
		}
	}
	return decimal.NewFromFloat(v).Round(int32(places)).InexactFloat64()
}

// successMessage renders the confirmation for a committed run.
func successMessage(s domain.ProductionSnapshot, m domain.Mutations, batch float64) string {
	var b strings.Builder
	b.WriteString(printer.Sprintf(MsgProductionSucceeded,
		m.Product.Delta,
		s.Product.Name,
		decimal.NewFromFloat(batch).Round(DisplayPrecisionBatch).InexactFloat64(),
	))

	consumed := make([]string, 0, len(m.Ingredients)+1)
	for _, d := range m.Ingredients {
		ing := s.Ingredients[d.IngredientID]
		unit := ing.DisplayUnit
		if unit == "" {
			unit = domain.UnitPieces
		}
		amount := units.ToDisplayQuantity(-d.Delta, unit)
		consumed = append(consumed, printer.Sprintf(MsgConsumedLine, ing.Name, displayRound(amount, unit), unit))
	}
	if s.Packaging != nil {
		consumed = append(consumed, printer.Sprintf(MsgConsumedLine, s.Packaging.Name, -m.Packaging.Delta, domain.UnitPieces))
	}
	if len(consumed) > 0 {
		b.WriteString(". Consumed: ")
		b.WriteString(strings.Join(consumed, ", "))
	}
	return b.String()
}
