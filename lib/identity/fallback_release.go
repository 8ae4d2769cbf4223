//go:build release

package identity

const fallbackPrivateKey = ""
