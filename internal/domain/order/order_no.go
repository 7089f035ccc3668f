package order

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const randomSuffixLen = 4

// GenerateOrderNumber 生成订单号
// 格式:ORD-<base36毫秒时间戳>-<4位base36随机>,全大写。
// 时间前缀保证大体有序,随机后缀把同毫秒冲突概率压到可忽略;
// 仓储层在唯一键冲突时换号重试一次兜底。
func GenerateOrderNumber() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	var b strings.Builder
	for i := 0; i < randomSuffixLen; i++ {
		b.WriteByte(base36Chars[rand.Intn(len(base36Chars))])
	}

	return "ORD-" + strings.ToUpper(ts) + "-" + b.String()
}

const base36Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
