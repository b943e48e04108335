package glyph

// Glyph indices past the digits 0-9.
const (
	IndexPoint    = 10
	IndexCurrency = 11
	IndexPlus     = 12
	IndexMinus    = 13
	IndexColon    = 14

	// MaxGlyphs is the size of a complete table.
	MaxGlyphs = 15
)

var symbolIndex = map[rune]int{
	'.': IndexPoint,
	'￥': IndexCurrency, // fullwidth yen sign
	'¥': IndexCurrency, // yen sign
	'¤': IndexCurrency, // generic currency sign
	'+': IndexPlus,
	'-': IndexMinus,
	':': IndexColon,
}

// Index returns the table index for r.
func Index(r rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}
	i, ok := symbolIndex[r]
	return i, ok
}

// DefaultURLs is the stock coupon-card glyph set: the ten digits, the
// decimal point and the currency sign.
var DefaultURLs = []string{
	"https://img.qlchat.com/qlLive/liveCommon/coupon-card-num-0.png",
	"https://img.qlchat.com/qlLive/liveCommon/coupon-card-num-1.png",
	"https://img.qlchat.com/qlLive/liveCommon/coupon-card-num-2.png",
	"https://img.qlchat.com/qlLive/liveCommon/coupon-card-num-3.png",
	"https://img.qlchat.com/qlLive/liveCommon/coupon-card-num-4.png",
	"https://img.qlchat.com/qlLive/liveCommon/coupon-card-num-5.png",
	"https://img.qlchat.com/qlLive/liveCommon/coupon-card-num-6.png",
	"https://img.qlchat.com/qlLive/liveCommon/coupon-card-num-7.png",
	"https://img.qlchat.com/qlLive/liveCommon/coupon-card-num-8.png",
	"https://img.qlchat.com/qlLive/liveCommon/coupon-card-num-9.png",
	"https://img.qlchat.com/qlLive/liveCommon/coupon-card-num-dian.png",
	"https://img.qlchat.com/qlLive/liveCommon/coupon-card-num-money.png",
}
