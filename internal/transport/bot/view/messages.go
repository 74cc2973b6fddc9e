package view

const StartMessage = `👋 <b>Phone Hunter</b>

Bot monitoruje ogłoszenia iPhone i wyłapuje okazje do odsprzedaży.

<b>Komendy:</b>
/status — stan skanera i ustawienia
/startscan — uruchom skaner
/stopscan — zatrzymaj skaner
/setbudget <code>kwota</code> — maksymalny budżet (zł)
/setminprofit <code>kwota</code> — minimalny zysk (zł)
/catalog — cennik modeli
/reload — przeładuj konfigurację z pliku`

const (
	ScannerAlreadyRunning = "Skaner już działa!"
	ScannerNotRunning     = "Skaner nie jest uruchomiony!"
	ScannerStarted        = "Skaner uruchomiony!"
	ScannerStopped        = "Skaner zatrzymany!"
)

const (
	SetBudgetMissingArgument = "Podaj kwotę: /setbudget 2000"
	SetBudgetInvalidFormat   = "Nieprawidłowa kwota. Przykład: /setbudget 2000"
	SetBudgetSuccess         = "💰 Budżet ustawiony na %d zł (konfiguracja v%d)"
)

const (
	SetMinProfitMissingArgument = "Podaj kwotę: /setminprofit 150"
	SetMinProfitInvalidFormat   = "Nieprawidłowa kwota. Przykład: /setminprofit 150"
	SetMinProfitSuccess         = "📈 Minimalny zysk ustawiony na %d zł (konfiguracja v%d)"
)

const (
	CatalogHeader = "📚 <b>Cennik modeli</b> (konfiguracja v%d)\n\n"
	CatalogItem   = "📱 <b>%s</b>\n   rynek: %d zł | skup: %d/%d/%d zł | naprawa: %d zł | min zysk: %d zł\n"
	CatalogEmpty  = "Cennik jest pusty."
)

const (
	ReloadSuccess = "🔄 Konfiguracja przeładowana (v%d, %d modeli)"
	ReloadError   = "❌ Błąd przeładowania: %v"
)
