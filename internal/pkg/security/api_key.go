package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidAPIKey = errors.New("invalid api key")

// HashAPIKey 生成 API Key 的 bcrypt 哈希，配置里只存哈希不存明文
func HashAPIKey(key string) (string, error) {
	if key == "" {
		return "", errors.New("api key cannot be empty")
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckAPIKey 校验请求携带的 API Key 与配置哈希是否匹配
func CheckAPIKey(key, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidAPIKey
		}
		return err
	}
	return nil
}
