package gatemate

/*-------------------------------------------------------------
 *
 * Purpose:	Table of supported devices.
 *
 * Description:	The built-in table covers the shipping CCGM1A parts.
 *		For engineering samples and future family members the
 *		table can be replaced by a devices.yaml found on the
 *		search path, so a new part does not require a rebuild.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type DeviceInfo struct {
	Name string `yaml:"name"`
	Dies int    `yaml:"dies"`
}

type device_list struct {
	Devices []DeviceInfo `yaml:"devices"`
}

var device_table = []DeviceInfo{
	{Name: "CCGM1A1", Dies: 1},
	{Name: "CCGM1A2", Dies: 2},
	{Name: "CCGM1A4", Dies: 4},
}

var device_search_locations = []string{
	"devices.yaml",
	"data/devices.yaml",
	"../data/devices.yaml",
	"/usr/local/share/gmtools/devices.yaml",
	"/usr/share/gmtools/devices.yaml",
}

/*-------------------------------------------------------------
 *
 * Function:	DeviceInit
 *
 * Purpose:	Called once at tool startup.  Looks for a devices.yaml
 *		override; silently keeps the built-in table when none
 *		is found.  A file that exists but does not parse is
 *		reported and skipped rather than trusted.
 *
 *--------------------------------------------------------------*/

func DeviceInit() {
	for _, location := range device_search_locations {
		var data, err = os.ReadFile(location)
		if err != nil {
			continue
		}
		var devices, parseErr = parse_device_list(data)
		if parseErr != nil {
			logger.Warn("ignoring device table", "file", location, "err", parseErr)
			continue
		}
		logger.Debug("loaded device table", "file", location, "devices", len(devices))
		device_table = devices
		return
	}
}

func parse_device_list(data []byte) ([]DeviceInfo, error) {
	var list device_list
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	if len(list.Devices) == 0 {
		return nil, fmt.Errorf("no devices listed")
	}
	for _, dev := range list.Devices {
		if dev.Dies != 1 && dev.Dies != 2 && dev.Dies != 4 {
			return nil, fmt.Errorf("device %s: unsupported die count %d", dev.Name, dev.Dies)
		}
	}
	return list.Devices, nil
}

func lookup_device(name string) (DeviceInfo, bool) {
	for _, dev := range device_table {
		if dev.Name == name {
			return dev, true
		}
	}
	return DeviceInfo{}, false
}
