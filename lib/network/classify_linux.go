package network

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"projekt/connectivity/lib/platform"
)

var sysClassNet = "/sys/class/net"

var devTypes = map[string]platform.Transport{
	"wlan":      platform.TransportWifi,
	"wwan":      platform.TransportCellular,
	"bluetooth": platform.TransportBluetooth,
	"wpan":      platform.TransportThread,
	"lowpan":    platform.TransportLowPan,
}

// deviceTransport asks sysfs for the device type of the interface.
func deviceTransport(name string) (platform.Transport, bool) {
	dir := filepath.Join(sysClassNet, filepath.Base(name))
	if _, err := os.Stat(filepath.Join(dir, "wireless")); err == nil {
		return platform.TransportWifi, true
	}
	if _, err := os.Stat(filepath.Join(dir, "phy80211")); err == nil {
		return platform.TransportWifi, true
	}
	data, err := os.ReadFile(filepath.Join(dir, "uevent"))
	if err != nil {
		return 0, false
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		key, value, ok := bytes.Cut(scanner.Bytes(), []byte("="))
		if !ok || string(key) != "DEVTYPE" {
			continue
		}
		t, known := devTypes[string(value)]
		return t, known
	}
	return 0, false
}
