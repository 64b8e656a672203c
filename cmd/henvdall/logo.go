package henvdall

import "strings"

const logo = `
 _______  _         _        ______   _______  _        _
|\     /|(  ____ \( (    /|| \    / |(  __  \ (  ___  )( \      ( \
| )   ( || (    \/|  \  ( || |   | || (  \  )| (   ) || (      | (
| (___) || (__    |   \ | || |   | || |   ) || (___) || |      | |
|  ___  ||  __)   | (\ \) |( (   ) )| |   | ||  ___  || |      | |
| (   ) || (      | | \   | \ \_/ / | |   ) || (   ) || |      | |
| )   ( || (____/\| )  \  |  \   /  | (__/  )| )   ( || (____/\| (____/\
|/     \|(_______/|/    )_)   \_/   (______/ |/     \|(_______/(_______/`

const tagline = "The Gatekeeper of Environment Variables"

// logoWidth is the width of the widest logo line
var logoWidth = func() int {
	width := 0
	for _, line := range strings.Split(logo, "\n") {
		width = max(width, len(line))
	}
	return width
}()

// center pads s so it sits in the middle of the logo
func center(s string) string {
	if pad := (logoWidth - len(s)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

func banner() (string, string) {
	return logo, center("Henvdall") + "\n" + center(tagline)
}
