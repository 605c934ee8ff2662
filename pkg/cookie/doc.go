// Package cookie sets and reads HTTP cookies, optionally encrypted.
//
// A Manager is created from one or more secrets of at least 32 characters.
// The first secret encrypts, every secret is tried when decrypting, so a new
// secret can be rolled out by prepending it while old cookies stay readable.
// Per-secret AES-256 keys are derived with HKDF-SHA256 and values are sealed
// with AES-GCM; the random nonce is prepended to the ciphertext.
//
//	cookies, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//	    return err
//	}
//	_ = cookies.SetEncrypted(w, "sid", token, cookie.WithMaxAge(3600))
//	token, err := cookies.GetEncrypted(r, "sid")
//
// Defaults are Path=/, HttpOnly and SameSite=Lax; Options override them per
// manager or per call.
package cookie
