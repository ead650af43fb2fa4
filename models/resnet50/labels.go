package resnet50

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// LoadLabels reads a newline-separated class label file, one label per
// ImageNet class index. Blank lines are skipped.
func LoadLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading label file %s", path)
	}

	var labels []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		labels = append(labels, line)
	}
	if len(labels) == 0 {
		return nil, errors.Errorf("label file %s contains no labels", path)
	}
	return labels, nil
}
