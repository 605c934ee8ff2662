// Package csrf binds HTML form submissions to the session that rendered them.
//
// A Manager keeps exactly one random token per session under a configurable
// session key. Views embed it as a hidden input; on submission Check compares
// the posted value with the session copy. A failed check replaces the session
// token, so a leaked or guessed value is good for at most one attempt.
//
// The session itself is a collaborator: anything with Get and Set over
// strings works, including *session.Session from this module. The submitted
// form is anything with Has and Get, which url.Values satisfies.
//
//	guard, err := csrf.New(csrf.WithPostKey("_token"))
//	if err != nil {
//	    return err
//	}
//
//	// rendering
//	field, err := guard.HTML(sess) // <input type="hidden" name="_token" value="..." />
//
//	// handling
//	_ = r.ParseForm()
//	ok, err := guard.Check(sess, r.PostForm)
//
// Middleware does both: it makes sure a token exists, exposes it through
// TokenFromContext and rejects unsafe requests whose token does not match.
//
// # Tokens
//
// Tokens are TokenLength lowercase hex characters encoding TokenLength/2
// bytes from crypto/rand, so TokenLength must be even. A stored value of any
// other length is treated as absent and replaced on the next access.
// Comparison is constant time.
//
// # Errors
//
// A failed check is not an error, it is the false result of Check. Errors
// are reserved for misconfiguration (ErrOddTokenLength and friends from New)
// and for a failing random source (ErrTokenGeneration), in which case the
// session is left untouched rather than given a weak token.
package csrf
