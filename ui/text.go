package ui

// User-facing labels
const (
	appTitle       = "Asystent Prawa Pracy"
	userLabel      = "Ty"
	expertLabel    = "Ekspert"
	sourcesHeading = "Źródła:"
	loadingText    = "Analizuję przepisy..."
	submitHint     = "Wyślij zapytanie"
	newlineHint    = "Nowa linia"
	helpHint       = "Pomoc"
	quitHint       = "Wyjście"
	emptyText      = "Zadaj pytanie dotyczące prawa pracy, np. \"Ile dni urlopu mi przysługuje?\""
	placeholder    = "Wpisz pytanie..."
)
