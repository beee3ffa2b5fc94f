package usecase

// composeStateLabels replaces the managed labels in current with apply,
// leaving externally applied labels untouched and in their original order.
func (uc *implUseCase) composeStateLabels(current []string, apply ...string) []string {
	managed := make(map[string]struct{}, 4)
	for _, label := range uc.cfg.Labels.All() {
		managed[label] = struct{}{}
	}

	labels := make([]string, 0, len(current)+len(apply))
	for _, label := range current {
		if _, ok := managed[label]; ok {
			continue
		}
		labels = append(labels, label)
	}
	return append(labels, apply...)
}
