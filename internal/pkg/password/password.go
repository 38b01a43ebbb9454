// Package password 封装凭据哈希。
//
// 只存 bcrypt 哈希，永远不存明文。成本因子在这里固定，
// 不随调用方配置变化。
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// cost 是 bcrypt 工作因子，编译期固定。
const cost = bcrypt.DefaultCost

// Hash 对明文做加盐单向哈希。
//
// 同一明文每次调用产生不同摘要（盐随机），摘要无法还原明文。
func Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("empty password")
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify 校验明文与摘要是否匹配。
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
