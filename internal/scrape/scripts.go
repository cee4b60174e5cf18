// In-page scripts for bulk field extraction. The data-test-* attributes are
// the site's own test hooks and have been the most stable selectors
// available; everything else here is a fallback for layout variants.

package scrape

// panelFieldsJS pulls name/title/company/location out of the open profile
// panel in one round trip. Experience entries come in two shapes (standalone
// and grouped positions); querySelector with a combined selector returns the
// first match in DOM order, which is the most recent role either way. The
// header lockup is the fallback when the experience section is missing.
//
// cleanText strips the hidden hoverable-popover content the site injects
// into clickable elements; it is invisible on screen but included in
// textContent.
const panelFieldsJS = `
() => {
	const result = { name: '', title: '', company: '', location: '' };

	const nameEl = document.querySelector('[data-test-row-lockup-full-name]');
	if (nameEl) result.name = nameEl.textContent.trim();

	function cleanText(el) {
		if (!el) return '';
		const clone = el.cloneNode(true);
		for (const pop of clone.querySelectorAll('[data-test-hoverable-popover-content]')) {
			pop.remove();
		}
		return clone.textContent.replace(/\s+/g, ' ').trim();
	}

	const titleEl = document.querySelector(
		'[data-test-grouped-position-entity-title], [data-test-position-entity-title]'
	);
	if (titleEl) result.title = cleanText(titleEl);

	const companyEl = document.querySelector(
		'[data-test-grouped-position-entity-company-link], [data-test-position-entity-company-link]'
	);
	if (companyEl) result.company = cleanText(companyEl);

	// Location scoped to the most recent role's <li>, so an older job's
	// location is never picked up when the first one has none.
	if (titleEl) {
		const roleEntry = titleEl.closest('li');
		if (roleEntry) {
			const locEl = roleEntry.querySelector(
				'[data-test-grouped-position-entity-location], [data-test-position-entity-location]'
			);
			if (locEl) result.location = cleanText(locEl);
		}
	}

	if (!result.title) {
		result.title = cleanText(document.querySelector('[data-test-row-lockup-headline]'));
	}
	if (!result.company) {
		result.company = cleanText(document.querySelector('[data-test-topcard-condensed-lockup-current-employer]'));
	}
	if (!result.location) {
		const locHeader = document.querySelector('[data-test-row-lockup-location]');
		if (locHeader) result.location = cleanText(locHeader).replace(/^[·•\s]+/, '');
	}

	return result;
}`

// educationJS reads the panel's education rows. Year ranges render as two
// <time> elements; the last one is the graduation year. A "see more"
// expander means the list is truncated.
const educationJS = `
() => {
	const result = { entries: [], hasEducation: false, hasShowMore: false };
	const items = document.querySelectorAll('li[data-live-test-education-item]');
	if (items.length === 0) return result;
	result.hasEducation = true;

	if (document.querySelector('[data-test-education-card-expand-more-lower-button]')) {
		result.hasShowMore = true;
		return result;
	}

	for (const item of items) {
		const degreeEl = item.querySelector(
			'[data-test-education-entity-degree-name] span[data-test-text-highlighter-text-only]'
		);
		const degree = degreeEl ? degreeEl.textContent.trim() : '';

		let year = null;
		const datesCell = item.querySelector('[data-test-education-entity-dates]');
		if (datesCell) {
			const times = datesCell.querySelectorAll('time');
			if (times.length > 0) {
				const m = times[times.length - 1].textContent.trim().match(/\d{4}/);
				if (m) year = parseInt(m[0]);
			}
		}

		result.entries.push({ degree: degree, year: year });
	}
	return result;
}`

// profileAnchorJS scans visible links for a public profile URL.
const profileAnchorJS = `
() => {
	for (const a of document.querySelectorAll('a[href*="linkedin.com/in/"]')) {
		const href = a.getAttribute('href');
		if (href) return href;
	}
	return null;
}`
