package useragent

import (
	"fmt"
	"strings"
)

// Profile identifies a browser/OS combination whose User-Agent string is sent
// with outgoing requests.
type Profile int

const (
	ChromeLinuxX64 Profile = iota
	ChromeWin10X64
	ChromeWin7X64
	ChromeMacOSX
	FirefoxLinuxX64
	FirefoxWin10X64
	FirefoxWin7X64
	FirefoxMacOSX
	IE11Win10X64
	IE11Win8X64
	IE11Win7X64
	IE9WinVista
	SafariMacOSX
	SafariIOS
)

// Default is used whenever no profile, or an unknown one, is given.
const Default = FirefoxLinuxX64

var names = map[Profile]string{
	ChromeLinuxX64:  "chrome-linux-x64",
	ChromeWin10X64:  "chrome-win10-x64",
	ChromeWin7X64:   "chrome-win7-x64",
	ChromeMacOSX:    "chrome-macosx",
	FirefoxLinuxX64: "firefox-linux-x64",
	FirefoxWin10X64: "firefox-win10-x64",
	FirefoxWin7X64:  "firefox-win7-x64",
	FirefoxMacOSX:   "firefox-macosx",
	IE11Win10X64:    "ie11-win10-x64",
	IE11Win8X64:     "ie11-win8-x64",
	IE11Win7X64:     "ie11-win7-x64",
	IE9WinVista:     "ie9-winvista",
	SafariMacOSX:    "safari-macosx",
	SafariIOS:       "safari-ios",
}

// UserAgent returns the literal header value for p.
func (p Profile) UserAgent() string {
	switch p {
	case ChromeLinuxX64:
		return "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/56.0.2924.87 Safari/537.36"
	case ChromeWin10X64:
		return "Mozilla/5.0 (Windows NT 10.0; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/56.0.2924.87 Safari/537.36"
	case ChromeWin7X64:
		return "Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/56.0.2924.87 Safari/537.36"
	case ChromeMacOSX:
		return "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_12_3) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/56.0.2924.87 Safari/537.36"
	case FirefoxLinuxX64:
		return "Mozilla/5.0 (Windows NT 6.1; rv:48.0) Gecko/20100101 Firefox/48.0"
	case FirefoxWin10X64:
		return "Mozilla/5.0 (Windows NT 10.0; WOW64; rv:51.0) Gecko/20100101 Firefox/51.0"
	case FirefoxWin7X64:
		return "Mozilla/5.0 (Windows NT 6.1; WOW64; rv:51.0) Gecko/20100101 Firefox/51.0"
	case FirefoxMacOSX:
		return "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.12; rv:51.0) Gecko/20100101 Firefox/51.0"
	case IE11Win10X64:
		return "Mozilla/5.0 (Windows NT 10.0; WOW64; Trident/7.0; rv:11.0) like Gecko"
	case IE11Win8X64:
		return "Mozilla/5.0 (Windows NT 6.3; WOW64; Trident/7.0; rv:11.0) like Gecko"
	case IE11Win7X64:
		return "Mozilla/5.0 (Windows NT 6.1; WOW64; Trident/7.0; rv:11.0) like Gecko"
	case IE9WinVista:
		return "Mozilla/5.0 (compatible; MSIE 9.0; Windows NT 6.0; Trident/5.0; Trident/5.0)"
	case SafariMacOSX:
		return "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_12_3) AppleWebKit/602.4.8 (KHTML, like Gecko) Version/10.0.3 Safari/602.4.8"
	case SafariIOS:
		return "Mozilla/5.0 (iPad; CPU OS 10_2_1 like Mac OS X) AppleWebKit/602.4.6 (KHTML, like Gecko) Version/10.0 Mobile/14D27 Safari/602.1"
	default:
		return Default.UserAgent()
	}
}

func (p Profile) String() string {
	if name, ok := names[p]; ok {
		return name
	}
	return fmt.Sprintf("Profile(%d)", int(p))
}

// Parse maps a profile name back to its Profile. Both "firefox-linux-x64" and
// "FIREFOX_LINUX_X64" are accepted.
func Parse(name string) (Profile, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-"))
	for p, n := range names {
		if n == key {
			return p, nil
		}
	}
	return Default, fmt.Errorf("unknown user agent profile %q", name)
}

// All lists every profile in declaration order.
func All() []Profile {
	res := make([]Profile, 0, len(names))
	for p := ChromeLinuxX64; p <= SafariIOS; p++ {
		res = append(res, p)
	}
	return res
}
