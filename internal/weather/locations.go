package weather

// EuropeCapitals is the built-in extraction target list.
var EuropeCapitals = []Location{
	{Country: "France", City: "Paris", Latitude: 48.8566, Longitude: 2.3522},
	{Country: "Germany", City: "Berlin", Latitude: 52.52, Longitude: 13.4050},
	{Country: "Spain", City: "Madrid", Latitude: 40.4168, Longitude: -3.7038},
	{Country: "Italy", City: "Rome", Latitude: 41.9028, Longitude: 12.4964},
	{Country: "Belgium", City: "Brussels", Latitude: 50.8503, Longitude: 4.3517},
	{Country: "Netherlands", City: "Amsterdam", Latitude: 52.3676, Longitude: 4.9041},
	{Country: "Portugal", City: "Lisbon", Latitude: 38.7223, Longitude: -9.1393},
	{Country: "Switzerland", City: "Bern", Latitude: 46.9480, Longitude: 7.4474},
	{Country: "Austria", City: "Vienna", Latitude: 48.2082, Longitude: 16.3738},
	{Country: "Sweden", City: "Stockholm", Latitude: 59.3293, Longitude: 18.0686},
	{Country: "Norway", City: "Oslo", Latitude: 59.9139, Longitude: 10.7522},
	{Country: "Finland", City: "Helsinki", Latitude: 60.1699, Longitude: 24.9384},
	{Country: "Denmark", City: "Copenhagen", Latitude: 55.6761, Longitude: 12.5683},
	{Country: "Ireland", City: "Dublin", Latitude: 53.3498, Longitude: -6.2603},
	{Country: "Poland", City: "Warsaw", Latitude: 52.2297, Longitude: 21.0122},
	{Country: "Czech Republic", City: "Prague", Latitude: 50.0755, Longitude: 14.4378},
	{Country: "Hungary", City: "Budapest", Latitude: 47.4979, Longitude: 19.0402},
	{Country: "Greece", City: "Athens", Latitude: 37.9838, Longitude: 23.7275},
	{Country: "Romania", City: "Bucharest", Latitude: 44.4268, Longitude: 26.1025},
	{Country: "Bulgaria", City: "Sofia", Latitude: 42.6977, Longitude: 23.3219},
	{Country: "Croatia", City: "Zagreb", Latitude: 45.8150, Longitude: 15.9819},
	{Country: "Serbia", City: "Belgrade", Latitude: 44.7866, Longitude: 20.4489},
	{Country: "Slovakia", City: "Bratislava", Latitude: 48.1486, Longitude: 17.1077},
	{Country: "Slovenia", City: "Ljubljana", Latitude: 46.0511, Longitude: 14.5051},
	{Country: "Luxembourg", City: "Luxembourg", Latitude: 49.6116, Longitude: 6.1319},
	{Country: "Iceland", City: "Reykjavik", Latitude: 64.1466, Longitude: -21.9426},
	{Country: "Estonia", City: "Tallinn", Latitude: 59.4370, Longitude: 24.7536},
	{Country: "Latvia", City: "Riga", Latitude: 56.9496, Longitude: 24.1052},
	{Country: "Lithuania", City: "Vilnius", Latitude: 54.6872, Longitude: 25.2797},
	{Country: "Malta", City: "Valletta", Latitude: 35.8989, Longitude: 14.5146},
	{Country: "Cyprus", City: "Nicosia", Latitude: 35.1856, Longitude: 33.3823},
}
