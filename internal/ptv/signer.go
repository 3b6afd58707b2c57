package ptv

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"
)

// SignedPath builds the authenticated path-and-query fragment for a PTV
// Timetable API request. It inserts the developer id into the query, encodes
// the parameters in sorted key order (the upstream service verifies the
// signature over the exact byte sequence, so the encoding must be
// deterministic), computes HMAC-SHA1 over path + "?" + query using key, and
// appends the uppercase hex digest as the signature parameter.
//
// params is not mutated. Returns [ErrMissingCredentials] when key is empty;
// there are no other failure modes.
func SignedPath(path string, params url.Values, devID, key string) (string, error) {
	if key == "" {
		return "", ErrMissingCredentials
	}

	query := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	query.Set("devid", devID)

	stringToSign := path + "?" + query.Encode()

	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(stringToSign))
	signature := strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))

	return stringToSign + "&signature=" + signature, nil
}
