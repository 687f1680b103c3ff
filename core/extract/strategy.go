package extract

// Strategy names, in default cascade order.
const (
	StrategyDirect         = "direct"
	StrategyNested         = "nested"
	StrategyEmbedded       = "embedded"
	StrategyRepaired       = "repaired"
	StrategyEscapedPattern = "escaped-pattern"
	StrategyLooseScrape    = "loose-scrape"
	StrategyArrayFilter    = "array-filter"

	// StrategySentinel is reported when every strategy failed.
	StrategySentinel = "sentinel"
)

// Strategy is one step of the extraction cascade. Run returns the records it
// recovered and whether it succeeded; it succeeds only with at least one
// record.
type Strategy struct {
	Name string
	Run  func(text string, schema *Schema) ([]Record, bool)
}

var (
	// Direct parses the whole input as JSON.
	Direct = Strategy{Name: StrategyDirect, Run: runDirect}

	// Nested re-runs the structured strategies on JSON string values that
	// carry a payload of their own.
	Nested = Strategy{Name: StrategyNested, Run: runNested}

	// Embedded parses the first JSON array in surrounding prose that mentions
	// the primary key.
	Embedded = Strategy{Name: StrategyEmbedded, Run: runEmbedded}

	// Repaired fixes truncated or loosely written arrays with jsonrepair.
	Repaired = Strategy{Name: StrategyRepaired, Run: runRepaired}

	// EscapedPattern matches object-like fragments with escaped quotes.
	EscapedPattern = Strategy{Name: StrategyEscapedPattern, Run: runEscapedPattern}

	// LooseScrape pairs "field:" occurrences positionally.
	LooseScrape = Strategy{Name: StrategyLooseScrape, Run: runLooseScrape}

	// ArrayFilter keeps the objects of any JSON array that carry the primary
	// key, defaulting missing fields.
	ArrayFilter = Strategy{Name: StrategyArrayFilter, Run: runArrayFilter}
)

// DefaultStrategies returns the default cascade, strict to lenient.
func DefaultStrategies() []Strategy {
	return []Strategy{
		Direct,
		Nested,
		Embedded,
		Repaired,
		EscapedPattern,
		LooseScrape,
		ArrayFilter,
	}
}
