package cli

import "time"

type Options struct {
	URL           string        `short:"u" long:"url" description:"backend url"`
	ConfigURL     string        `short:"c" long:"config" description:"config file URL (yaml or json)"`
	ClientID      string        `short:"i" long:"client-id" description:"identity widget client id"`
	Credential    string        `short:"t" long:"token" description:"widget credential, read from stdin when empty"`
	CookieJar     string        `short:"j" long:"jar" description:"cookie jar file, keeps the session across runs"`
	Logout        bool          `short:"l" long:"logout" description:"log out once the session is settled"`
	WidgetTimeout time.Duration `short:"w" long:"widget-timeout" description:"identity widget wait timeout"`
	LogLevel      string        `long:"log-level" description:"debug, info, warn or error"`
}
