package media

import (
	"regexp"
	"strings"
)

// Default size suffixes used by RewriteKnownCDN.
const (
	// DefaultOSSSuffix requests a 64×64 center crop from the qlchat image CDN.
	DefaultOSSSuffix = "@64h_64w_1e_1c_2o"

	// DefaultWeChatSuffix requests the 64px WeChat avatar.
	DefaultWeChatSuffix = "/64"
)

const (
	ossHost    = "img.qlchat.com"
	wechatHost = "wx.qlogo.cn/mmopen"
)

var wechatSizePattern = regexp.MustCompile(`/(0|132|64|96)$`)

// RewriteKnownCDN rewrites avatar URLs of the known CDNs to their 64px
// variants. See FormatCDNURL.
func RewriteKnownCDN(url string) string {
	return FormatCDNURL(url, DefaultOSSSuffix, DefaultWeChatSuffix)
}

// FormatCDNURL requests a differently sized asset from a known CDN:
//
//   - img.qlchat.com URLs lose any "@..." processing suffix and get ossSuffix
//   - wx.qlogo.cn/mmopen URLs ending in /0, /132, /64 or /96 get wechatSuffix
//     in place of that size
//
// Other URLs are returned unchanged. Rewriting is idempotent.
func FormatCDNURL(url, ossSuffix, wechatSuffix string) string {
	switch {
	case strings.Contains(url, ossHost):
		if i := strings.IndexByte(url, '@'); i >= 0 {
			url = url[:i]
		}
		return url + ossSuffix
	case strings.Contains(url, wechatHost):
		return wechatSizePattern.ReplaceAllLiteralString(url, wechatSuffix)
	}
	return url
}
