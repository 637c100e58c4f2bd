package util

// SanitizeKey turns an API endpoint path into a flat cache key,
// e.g. "stock_market/gainers?limit=50" -> "stock_market_gainers_limit_50".
func SanitizeKey(endpoint string) string {
	out := make([]byte, 0, len(endpoint))
	for i := 0; i < len(endpoint); i++ {
		switch endpoint[i] {
		case '/', '?', '=', '&':
			out = append(out, '_')
		default:
			out = append(out, endpoint[i])
		}
	}
	return string(out)
}
