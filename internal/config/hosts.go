package config

// HostConfig holds per-host overrides for crawl behavior, keyed by the
// host part of the seed address.
type HostConfig struct {
	// Depth overrides the global max depth for this host.
	// Zero means the global value applies.
	Depth int `yaml:"depth,omitempty"`

	// UserAgent overrides the User-Agent header for this host.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Headers are custom HTTP headers sent with every request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Cookie is an HTTP cookie sent with every request.
	// Format: "name=value" or "name1=value1; name2=value2".
	Cookie string `yaml:"cookie,omitempty"`

	// SkipExtensions are extensions to exclude in addition to the
	// built-in image set.
	SkipExtensions []string `yaml:"skipExtensions,omitempty"`
}

// File represents the structure of the .wordspider configuration file.
type File struct {
	// Hosts maps host names to their overrides.
	Hosts map[string]HostConfig `yaml:"hosts,omitempty"`

	// Defaults apply to every host unless overridden.
	Defaults HostConfig `yaml:"defaults,omitempty"`
}

// GetHostConfig returns the configuration for a host, merging any
// host-specific entry over the file's defaults.
func (cf *File) GetHostConfig(host string) HostConfig {
	result := cf.Defaults

	hc, ok := cf.Hosts[host]
	if !ok {
		return result
	}

	if hc.Depth != 0 {
		result.Depth = hc.Depth
	}
	if hc.UserAgent != "" {
		result.UserAgent = hc.UserAgent
	}
	if hc.Cookie != "" {
		result.Cookie = hc.Cookie
	}
	if len(hc.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string)
		}
		for k, v := range hc.Headers {
			result.Headers[k] = v
		}
	}
	if len(hc.SkipExtensions) > 0 {
		result.SkipExtensions = append(result.SkipExtensions, hc.SkipExtensions...)
	}

	return result
}
