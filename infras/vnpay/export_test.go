package vnpay

// Sign exposes the canonical signing so tests can forge provider callbacks.
func Sign(secret string, params map[string][]string) string {
	return sign(secret, canonical(params))
}
