//go:build windows

package launch

func fatalSignal(error) (string, bool) { return "", false }
