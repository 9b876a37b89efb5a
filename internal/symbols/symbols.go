// Package symbols holds the static cross-provider symbol reference tables.
// Read-only at runtime.
package symbols

import "strings"

// Meta maps a canonical crypto symbol to its per-provider identifiers.
type Meta struct {
	CoinGeckoID string
	BinancePair string // empty: not listed on Binance
	Name        string
}

// cryptoTable keys are canonical upper-case symbols.
var cryptoTable = map[string]Meta{
	"BTC":   {CoinGeckoID: "bitcoin", BinancePair: "BTCUSDT", Name: "Bitcoin"},
	"ETH":   {CoinGeckoID: "ethereum", BinancePair: "ETHUSDT", Name: "Ethereum"},
	"SOL":   {CoinGeckoID: "solana", BinancePair: "SOLUSDT", Name: "Solana"},
	"XRP":   {CoinGeckoID: "ripple", BinancePair: "XRPUSDT", Name: "XRP"},
	"DOGE":  {CoinGeckoID: "dogecoin", BinancePair: "DOGEUSDT", Name: "Dogecoin"},
	"ADA":   {CoinGeckoID: "cardano", BinancePair: "ADAUSDT", Name: "Cardano"},
	"AVAX":  {CoinGeckoID: "avalanche-2", BinancePair: "AVAXUSDT", Name: "Avalanche"},
	"DOT":   {CoinGeckoID: "polkadot", BinancePair: "DOTUSDT", Name: "Polkadot"},
	"MATIC": {CoinGeckoID: "matic-network", BinancePair: "MATICUSDT", Name: "Polygon"},
	"LINK":  {CoinGeckoID: "chainlink", BinancePair: "LINKUSDT", Name: "Chainlink"},
	"UNI":   {CoinGeckoID: "uniswap", BinancePair: "UNIUSDT", Name: "Uniswap"},
	"ATOM":  {CoinGeckoID: "cosmos", BinancePair: "ATOMUSDT", Name: "Cosmos"},
	"LTC":   {CoinGeckoID: "litecoin", BinancePair: "LTCUSDT", Name: "Litecoin"},
	"BCH":   {CoinGeckoID: "bitcoin-cash", BinancePair: "BCHUSDT", Name: "Bitcoin Cash"},
	"SHIB":  {CoinGeckoID: "shiba-inu", BinancePair: "SHIBUSDT", Name: "Shiba Inu"},

	// Stablecoins, USD-pegged.
	"USDT":   {CoinGeckoID: "tether", BinancePair: "USDTDAI", Name: "Tether"},
	"USDC":   {CoinGeckoID: "usd-coin", BinancePair: "USDCTUSD", Name: "USD Coin"},
	"USDS":   {CoinGeckoID: "usds", BinancePair: "USDSUSDC", Name: "USDS"},
	"USDE":   {CoinGeckoID: "ethena-usde", BinancePair: "USDEUSDT", Name: "Ethena USDe"},
	"DAI":    {CoinGeckoID: "dai", BinancePair: "DAIUSDT", Name: "Dai"},
	"FDUSD":  {CoinGeckoID: "first-digital-usd", BinancePair: "FDUSDUSDC", Name: "First Digital USD"},
	"PYUSD":  {CoinGeckoID: "paypal-usd", BinancePair: "PYUSDUSDT", Name: "PayPal USD"},
	"FRAX":   {CoinGeckoID: "frax", BinancePair: "FRAXUSDT", Name: "Frax"},
	"TUSD":   {CoinGeckoID: "true-usd", BinancePair: "TUSDUSDT", Name: "TrueUSD"},
	"USDP":   {CoinGeckoID: "pax-dollar", BinancePair: "USDPUSDT", Name: "Pax Dollar"},
	"GUSD":   {CoinGeckoID: "gemini-dollar", BinancePair: "GUSDUSDT", Name: "Gemini Dollar"},
	"LUSD":   {CoinGeckoID: "liquity-usd", BinancePair: "LUSDUSDT", Name: "Liquity USD"},
	"CRVUSD": {CoinGeckoID: "crvusd", BinancePair: "CRVUSDUSDT", Name: "Curve USD"},
	"SUSD":   {CoinGeckoID: "susd", BinancePair: "SUSDUSDT", Name: "sUSD"},
	"BUSD":   {CoinGeckoID: "binance-usd", BinancePair: "BUSDUSDT", Name: "Binance USD"},

	// Stablecoins, euro-pegged.
	"EURC": {CoinGeckoID: "eurc", BinancePair: "EURCUSDT", Name: "EURC"},

	// Tokenized stocks (CoinGecko only): tech.
	"TSLAX":  {CoinGeckoID: "tesla-xstock", Name: "Tesla xStock"},
	"NVDAX":  {CoinGeckoID: "nvidia-xstock", Name: "NVIDIA xStock"},
	"GOOGLX": {CoinGeckoID: "alphabet-xstock", Name: "Alphabet xStock"},
	"AAPLX":  {CoinGeckoID: "apple-xstock", Name: "Apple xStock"},
	"AMZNX":  {CoinGeckoID: "amazon-xstock", Name: "Amazon xStock"},
	"MSFTX":  {CoinGeckoID: "microsoft-xstock", Name: "Microsoft xStock"},
	"METAX":  {CoinGeckoID: "meta-xstock", Name: "Meta xStock"},
	"NFLXX":  {CoinGeckoID: "netflix-xstock", Name: "Netflix xStock"},
	"COINX":  {CoinGeckoID: "coinbase-xstock", Name: "Coinbase xStock"},
	"MSTRX":  {CoinGeckoID: "microstrategy-xstock", Name: "MicroStrategy xStock"},
	"INTCX":  {CoinGeckoID: "intel-xstock", Name: "Intel xStock"},
	"AMDX":   {CoinGeckoID: "amd-xstock", Name: "AMD xStock"},
	"ORCLX":  {CoinGeckoID: "oracle-xstock", Name: "Oracle xStock"},
	"PLTRX":  {CoinGeckoID: "palantir-xstock", Name: "Palantir xStock"},
	"CRWDX":  {CoinGeckoID: "crowdstrike-xstock", Name: "CrowdStrike xStock"},
	"CRMX":   {CoinGeckoID: "salesforce-xstock", Name: "Salesforce xStock"},
	"PANWX":  {CoinGeckoID: "palo-alto-networks-xstock", Name: "Palo Alto Networks xStock"},
	"ASMLX":  {CoinGeckoID: "asml-xstock", Name: "ASML xStock"},
	"MUX":    {CoinGeckoID: "micron-technology-xstock", Name: "Micron Technology xStock"},
	"AVGOX":  {CoinGeckoID: "broadcom-xstock", Name: "Broadcom xStock"},

	// Tokenized ETFs and indices.
	"SPYX":  {CoinGeckoID: "sp500-xstock", Name: "S&P 500 xStock"},
	"QQQX":  {CoinGeckoID: "nasdaq-xstock", Name: "Nasdaq xStock"},
	"TQQQX": {CoinGeckoID: "tqqq-xstock", Name: "TQQQ xStock"},
	"VTIX":  {CoinGeckoID: "vanguard-xstock", Name: "Vanguard xStock"},
	"IWMX":  {CoinGeckoID: "russell-2000-xstock", Name: "Russell 2000 xStock"},
	"GLDX":  {CoinGeckoID: "gold-xstock", Name: "Gold xStock"},

	// Tokenized stocks: finance.
	"JPMX":  {CoinGeckoID: "jpmorgan-chase-xstock", Name: "JPMorgan Chase xStock"},
	"GSX":   {CoinGeckoID: "goldman-sachs-xstock", Name: "Goldman Sachs xStock"},
	"BACX":  {CoinGeckoID: "bank-of-america-xstock", Name: "Bank of America xStock"},
	"VX":    {CoinGeckoID: "visa-xstock", Name: "Visa xStock"},
	"MAX":   {CoinGeckoID: "mastercard-xstock", Name: "Mastercard xStock"},
	"AXPX":  {CoinGeckoID: "american-express-xstock", Name: "American Express xStock"},
	"PYPLX": {CoinGeckoID: "paypal-xstock", Name: "PayPal xStock"},
	"HOODX": {CoinGeckoID: "robinhood-xstock", Name: "Robinhood xStock"},
	"BLKX":  {CoinGeckoID: "blackrock-xstock", Name: "BlackRock xStock"},

	// Tokenized stocks: healthcare and pharma.
	"PFEX":  {CoinGeckoID: "pfizer-xstock", Name: "Pfizer xStock"},
	"UNHX":  {CoinGeckoID: "unitedhealth-xstock", Name: "UnitedHealth xStock"},
	"JNJX":  {CoinGeckoID: "johnson-johnson-xstock", Name: "Johnson & Johnson xStock"},
	"ABBVX": {CoinGeckoID: "abbvie-xstock", Name: "AbbVie xStock"},
	"MRKX":  {CoinGeckoID: "merck-xstock", Name: "Merck xStock"},
	"LLYX":  {CoinGeckoID: "eli-lilly-xstock", Name: "Eli Lilly xStock"},
	"NVOX":  {CoinGeckoID: "novo-nordisk-xstock", Name: "Novo Nordisk xStock"},
	"AZNX":  {CoinGeckoID: "astrazeneca-xstock", Name: "AstraZeneca xStock"},
	"ABTX":  {CoinGeckoID: "abbott-xstock", Name: "Abbott xStock"},
	"TMOX":  {CoinGeckoID: "thermo-fisher-xstock", Name: "Thermo Fisher xStock"},
	"DHRX":  {CoinGeckoID: "danaher-xstock", Name: "Danaher xStock"},
	"MDTX":  {CoinGeckoID: "medtronic-xstock", Name: "Medtronic xStock"},

	// Tokenized stocks: consumer and retail.
	"COSTX": {CoinGeckoID: "costco-xstock", Name: "Costco xStock"},
	"MCDX":  {CoinGeckoID: "mcdonald-s-xstock", Name: "McDonald's xStock"},
	"KOX":   {CoinGeckoID: "coca-cola-xstock", Name: "Coca-Cola xStock"},
	"PEPX":  {CoinGeckoID: "pepsico-xstock", Name: "PepsiCo xStock"},
	"PGX":   {CoinGeckoID: "procter-gamble-xstock", Name: "Procter & Gamble xStock"},
	"HDX":   {CoinGeckoID: "home-depot-xstock", Name: "Home Depot xStock"},
	"LULUX": {CoinGeckoID: "lululemon-xstock", Name: "lululemon xStock"},
	"WENX":  {CoinGeckoID: "wendy-s-xstock", Name: "Wendy's xStock"},
	"BKNGX": {CoinGeckoID: "booking-xstock", Name: "Booking xStock"},
	"EBAYX": {CoinGeckoID: "ebay-xstock", Name: "eBay xStock"},

	// Tokenized stocks: energy and industrial.
	"XOMX": {CoinGeckoID: "exxon-mobil-xstock", Name: "Exxon Mobil xStock"},
	"CVXX": {CoinGeckoID: "chevron-xstock", Name: "Chevron xStock"},
	"HONX": {CoinGeckoID: "honeywell-xstock", Name: "Honeywell xStock"},
	"LINX": {CoinGeckoID: "linde-xstock", Name: "Linde xStock"},

	// Tokenized stocks: other notables.
	"BRK.BX": {CoinGeckoID: "berkshire-hathaway-xstock", Name: "Berkshire Hathaway xStock"},
	"IBMX":   {CoinGeckoID: "international-business-machines-xstock", Name: "IBM xStock"},
	"CSCOX":  {CoinGeckoID: "cisco-xstock", Name: "Cisco xStock"},
	"ACNX":   {CoinGeckoID: "accenture-xstock", Name: "Accenture xStock"},
	"TX":     {CoinGeckoID: "at-t-xstock", Name: "AT&T xStock"},
	"PMX":    {CoinGeckoID: "philip-morris-xstock", Name: "Philip Morris xStock"},
	"CMCSAX": {CoinGeckoID: "comcast-xstock", Name: "Comcast xStock"},
	"SPGIX":  {CoinGeckoID: "s-p-global-xstock", Name: "S&P Global xStock"},
	"GMEX":   {CoinGeckoID: "gamestop-xstock", Name: "GameStop xStock"},
	"APPX":   {CoinGeckoID: "applovin-xstock", Name: "AppLovin xStock"},
	"RBLXX":  {CoinGeckoID: "roblox-xstock", Name: "Roblox xStock"},
	"ADBEX":  {CoinGeckoID: "adobe-xstock", Name: "Adobe xStock"},
	"DUOLX":  {CoinGeckoID: "duolingo-xstock", Name: "Duolingo xStock"},
	"EXPEX":  {CoinGeckoID: "expedia-xstock", Name: "Expedia xStock"},
	"MRVLX":  {CoinGeckoID: "marvell-xstock", Name: "Marvell xStock"},

	// Tokenized stocks: crypto-adjacent companies.
	"CRCLX": {CoinGeckoID: "circle-xstock", Name: "Circle xStock"},
	"DFDVX": {CoinGeckoID: "dfdv-xstock", Name: "DeFi Development Corp xStock"},
	"GLXYX": {CoinGeckoID: "galaxy-digital-xstock", Name: "Galaxy Digital xStock"},
	"RIOTX": {CoinGeckoID: "riot-platforms-xstock", Name: "Riot Platforms xStock"},
	"CLSKX": {CoinGeckoID: "cleanspark-xstock", Name: "CleanSpark xStock"},
	"CORZX": {CoinGeckoID: "core-scientific-xstock", Name: "Core Scientific xStock"},
	"HUTX":  {CoinGeckoID: "hut-8-xstock", Name: "Hut 8 xStock"},
	"BTBTX": {CoinGeckoID: "bit-digital-xstock", Name: "Bit Digital xStock"},
	"FUFUX": {CoinGeckoID: "bitfufu-xstock", Name: "BitFuFu xStock"},
	"BMNRX": {CoinGeckoID: "bitmine-xstock", Name: "Bitmine xStock"},

	// Tokenized stocks: space and clean energy.
	"RKLBX": {CoinGeckoID: "rocket-lab-xstock", Name: "Rocket Lab xStock"},
	"OKLOX": {CoinGeckoID: "oklo-xstock", Name: "Oklo xStock"},
	"ASTSX": {CoinGeckoID: "ast-spacemobile-xstock", Name: "AST SpaceMobile xStock"},
}

// Crypto returns metadata for a canonical crypto symbol. Unknown symbols get
// best-effort defaults: the lower-cased symbol as CoinGecko id and the USDT
// pair on Binance, matching what the upstreams accept for most listings.
func Crypto(symbol string) Meta {
	if m, ok := cryptoTable[symbol]; ok {
		return m
	}
	return Meta{
		CoinGeckoID: strings.ToLower(symbol),
		BinancePair: symbol + "USDT",
		Name:        symbol,
	}
}

// futuresTable maps major equities and index ETFs to the futures contract
// that tracks them.
var futuresTable = map[string]string{
	"SPY":   "ES",
	"QQQ":   "NQ",
	"IWM":   "RTY",
	"DIA":   "YM",
	"AAPL":  "NQ",
	"MSFT":  "NQ",
	"GOOGL": "NQ",
	"AMZN":  "NQ",
	"META":  "NQ",
	"NVDA":  "NQ",
	"TSLA":  "NQ",
}

// Futures returns the futures-contract hint for an equity symbol, or "".
func Futures(symbol string) string {
	return futuresTable[symbol]
}
