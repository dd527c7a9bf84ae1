package pkg

import "golang.org/x/crypto/bcrypt"

const secretHashCost = 12

// HashSecret produces the bcrypt hash stored in BODIX_APP_SECRET_HASH.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), secretHashCost)
	return string(hash), err
}

func CheckSecretHash(secret, hash string) bool {
	if secret == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
