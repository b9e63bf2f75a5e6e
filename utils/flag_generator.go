// file: utils/flag_generator.go
package utils

import (
	"fmt"
	"github.com/google/uuid"
	"strings"
)

// GenerateFlag 服务端生成随机 Flag，创建题目时未提供 Flag 则使用
func GenerateFlag() string {
	part1 := strings.Replace(uuid.New().String(), "-", "", -1)[:12]
	part2 := strings.Replace(uuid.New().String(), "-", "", -1)[:12]
	return fmt.Sprintf("FLAG{%s-%s}", part1, part2)
}
