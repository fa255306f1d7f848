package resolver

// curatedCities maps normalized city names, common aliases, misspellings and
// foreign-language variants to the single best airport for that city. The
// table is hand-maintained product judgement: for multi-airport cities it
// encodes which airport travelers actually want, so it always wins over
// automated resolution.
func curatedCities() map[string]string {
	return map[string]string{
		// Major cities (fast path)
		"vie": "VIE", "vienna": "VIE", "wien": "VIE",
		"grz": "GRZ", "graz": "GRZ",
		"muc": "MUC", "munich": "MUC", "muenchen": "MUC",
		"fra": "FRA", "frankfurt": "FRA",
		"cdg": "CDG", "paris": "CDG",
		"lhr": "LHR", "london": "LHR",
		"bcn": "BCN", "barcelona": "BCN",
		"mad": "MAD", "madrid": "MAD",
		"fco": "FCO", "rome": "FCO", "rom": "FCO",

		// Greek destinations (commonly searched)
		"athens": "ATH", "athen": "ATH",
		"rhodes": "RHO", "rhodos": "RHO",
		"santorini": "JTR", "thira": "JTR",
		"mykonos": "JMK",
		"corfu": "CFU", "korfu": "CFU",
		"crete": "HER", "kreta": "HER",

		// Spanish islands
		"pmi": "PMI", "palma": "PMI", "mallorca": "PMI",
		"ibz": "IBZ", "ibiza": "IBZ",
		"port de soller": "PMI",
		"alcudia":        "PMI",

		// Common international
		"ny": "JFK", "new york": "JFK", "nyc": "JFK",
		"dubai":   "DXB",
		"tokyo":   "NRT",
		"bangkok": "BKK",
	}
}
