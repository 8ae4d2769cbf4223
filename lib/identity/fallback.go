//go:build !release

package identity

// fallbackPrivateKey was published in a public tutorial, so anything it
// signs for is public too. Release builds (`-tags release`) leave it out.
const fallbackPrivateKey = "a8b513369437e05aee54948867a86923858a71d5ac380e7db91fd9717e453909"
