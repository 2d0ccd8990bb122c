package latam

// Markup of the results page. Class names carry build hashes so they are
// matched by substring.
const (
	ResultsList    = `ol[aria-label="Voos disponíveis."]`
	ResultsEntries = ResultsList + " > li"

	hourSelector       = `span[class*="HourFlight"]`
	durationSelector   = `div[class*="flight-duration"] > span:nth-of-type(2)`
	amountSelector     = `div[class*="TextAmount"]`
	directnessSelector = `div[class*="ContainerFooterCard"] > a > span`
)
